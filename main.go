package main

import (
	"fmt"
	"os"

	"github.com/code-with-cj/cj-resource-monitor/pkg/cmd"
)

func main() {
	if len(os.Args) < 2 {
		cmd.Monitor(nil)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "monitor", "m":
		cmd.Monitor(args)
	case "snapshot", "ss":
		cmd.Snapshot(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`cj-resource-monitor - CPU, RAM, GPU and network telemetry sampler

Usage:
  cjmon [command] [flags]

Running with no command starts the monitor.

Commands:
  monitor, m      Sample once per second until Ctrl+C
  snapshot, ss    Capture a single settled sample as JSON

Flags:
  -no-gpu          Skip GPU sensor discovery, use the CPU heuristic
  -json            Emit monitor samples as JSON lines
  -count int       Stop the monitor after this many samples (0 = forever)
  -output string   Snapshot output file path (default: stdout)
  -debug           Enable debug logging

Examples:
  # Watch the machine
  cjmon

  # Five JSON samples for scripting
  cjmon monitor -json -count 5

  # One-shot snapshot to a file
  cjmon snapshot -output snapshot.json
`)
}
