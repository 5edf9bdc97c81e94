package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/code-with-cj/cj-resource-monitor/pkg/config"
	"github.com/code-with-cj/cj-resource-monitor/pkg/metrics"
)

// Monitor samples on the fixed cadence and prints one line per sample, text
// by default or NDJSON under -json, until interrupted or the configured
// count is reached.
func Monitor(args []string) {
	cmdCtx, cleanup := InitCmd("monitor", args)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cmdCtx.Logger.Info("shutting down")
		cancel()
	}()

	emit := func(s metrics.Sample) error { return textLine(os.Stdout, s) }
	if cmdCtx.Config.JSON {
		enc := json.NewEncoder(os.Stdout)
		emit = func(s metrics.Sample) error { return enc.Encode(s) }
	}

	ticker := time.NewTicker(config.SampleInterval)
	defer ticker.Stop()

	count := 0
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			cmdCtx.Logger.Info("monitor stopped",
				zap.Int("samples", count),
				zap.Duration("elapsed", time.Since(start)))
			return

		case <-ticker.C:
			sample := cmdCtx.Sampler.Tick()
			if err := emit(sample); err != nil {
				cmdCtx.Logger.Warn("emit failed", zap.Error(err))
			}
			count++
			if cmdCtx.Config.Count > 0 && count >= cmdCtx.Config.Count {
				cmdCtx.Logger.Info("monitor stopped",
					zap.Int("samples", count),
					zap.Duration("elapsed", time.Since(start)))
				return
			}
		}
	}
}

func textLine(w io.Writer, s metrics.Sample) error {
	freq := ""
	if s.CPUFrequencyMHz > 0 {
		freq = fmt.Sprintf(" @ %.0f MHz", s.CPUFrequencyMHz)
	}

	var ramUsed uint64
	if s.RAMTotalBytes > s.RAMAvailableBytes {
		ramUsed = s.RAMTotalBytes - s.RAMAvailableBytes
	}

	_, err := fmt.Fprintf(w, "%s  cpu %.1f%%%s  ram %.1f%% (%s/%s)  gpu %.1f%% [%s]  net %.1f%% (%s/s)  up %s\n",
		s.Timestamp.Format("15:04:05"),
		s.CPUPercent, freq,
		s.RAMPercent, humanize.IBytes(ramUsed), humanize.IBytes(s.RAMTotalBytes),
		s.GPUPercent, s.GPULabel,
		s.NetPercent, humanize.IBytes(uint64(s.NetBytesPerSec)),
		(time.Duration(s.UptimeSeconds) * time.Second).String())
	return err
}
