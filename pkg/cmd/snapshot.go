package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/code-with-cj/cj-resource-monitor/pkg/config"
)

// Snapshot takes one settled sample and writes it as indented JSON to the
// configured output file or stdout. A warm-up tick establishes rate
// baselines, then the reported tick runs one cadence later.
func Snapshot(args []string) {
	if err := runSnapshot(args); err != nil {
		os.Exit(1)
	}
}

func runSnapshot(args []string) error {
	cmdCtx, cleanup := InitCmd("snapshot", args)
	defer cleanup()

	cmdCtx.Sampler.Tick()
	time.Sleep(config.SampleInterval)
	sample := cmdCtx.Sampler.Tick()

	output, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		cmdCtx.Logger.Error("failed to marshal sample", zap.Error(err))
		return err
	}

	if cmdCtx.Config.OutputFile != "" {
		if err := os.WriteFile(cmdCtx.Config.OutputFile, output, 0o644); err != nil {
			cmdCtx.Logger.Error("failed to write snapshot", zap.Error(err))
			return err
		}
		cmdCtx.Logger.Info("wrote snapshot", zap.String("path", cmdCtx.Config.OutputFile))
		return nil
	}

	fmt.Println(string(output))
	return nil
}
