// Package cmd wires the engine behind the command line entrypoints.
package cmd

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/code-with-cj/cj-resource-monitor/pkg/config"
	"github.com/code-with-cj/cj-resource-monitor/pkg/probing"
	"github.com/code-with-cj/cj-resource-monitor/pkg/sampling"
	"github.com/code-with-cj/cj-resource-monitor/pkg/sensing"
)

// CmdContext holds initialized command resources.
type CmdContext struct {
	Config  *config.Config
	Logger  *zap.Logger
	Sampler *sampling.Sampler
	Backend sensing.Backend
}

// InitCmd parses flags, builds the logger, probes the sensor backend once,
// and wires the sampler. The returned cleanup releases the backend and
// flushes the logger; callers run it on every exit path.
func InitCmd(name string, args []string) (*CmdContext, func()) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cfg := config.New()
	applyFlags := config.GetFlags(fs, cfg)
	fs.Parse(args)
	applyFlags()

	logger := newLogger(cfg.Debug)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	backend := sensing.Absent()
	if cfg.EnableGPUSensors {
		backend = sensing.Open(logger)
	}

	sampler := sampling.New(cfg, probing.NewSystemSource(), backend, logger)

	logger.Info("telemetry engine ready",
		zap.String("session_id", cfg.SessionID),
		zap.String("hostname", cfg.Hostname),
		zap.String("kernel", probing.KernelInfo()),
		zap.Bool("gpu_sensors", backend.Available()),
		zap.Duration("interval", config.SampleInterval))

	ctx := &CmdContext{
		Config:  cfg,
		Logger:  logger,
		Sampler: sampler,
		Backend: backend,
	}

	cleanup := func() {
		if err := backend.Close(); err != nil {
			logger.Warn("backend close failed", zap.Error(err))
		}
		_ = logger.Sync()
	}

	return ctx, cleanup
}

func newLogger(debug bool) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = level
	loggerConfig.OutputPaths = []string{"stderr"}
	loggerConfig.ErrorOutputPaths = []string{"stderr"}

	logger, err := loggerConfig.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return logger
}
