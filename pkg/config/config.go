// Package config holds the engine configuration and its calibration
// constants.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// SampleInterval is the fixed cadence of the sampling loop. The engine
// deliberately exposes no knob for it.
const SampleInterval = time.Second

// Calibration defaults.
const (
	// DefaultNetReferenceBytesPerSec is the throughput that reads as 100%
	// network utilization.
	DefaultNetReferenceBytesPerSec = 10 * 1024 * 1024

	// DefaultGPUHeuristicFactor scales CPU load into the GPU estimate used
	// when no sensor backend is present.
	DefaultGPUHeuristicFactor = 0.3
)

// HeuristicGPULabel marks GPU readings produced by the CPU-derived estimate
// instead of a hardware sensor.
const HeuristicGPULabel = "Integrated Graphics"

// Config carries all engine settings.
type Config struct {
	// Sampling calibration
	NetReferenceBytesPerSec float64
	GPUHeuristicFactor      float64

	// Capabilities
	EnableGPUSensors bool

	// Output settings
	JSON       bool
	OutputFile string
	Count      int

	// Diagnostics
	Debug bool

	// System identification
	SessionID string
	Hostname  string
}

// New creates a Config with default values and a fresh session identity.
func New() *Config {
	hostname, _ := os.Hostname()

	return &Config{
		NetReferenceBytesPerSec: DefaultNetReferenceBytesPerSec,
		GPUHeuristicFactor:      DefaultGPUHeuristicFactor,
		EnableGPUSensors:        true,
		SessionID:               uuid.NewString(),
		Hostname:                hostname,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.NetReferenceBytesPerSec <= 0 {
		return fmt.Errorf("net reference must be positive, got %v", c.NetReferenceBytesPerSec)
	}
	if c.GPUHeuristicFactor < 0 {
		return fmt.Errorf("gpu heuristic factor cannot be negative, got %v", c.GPUHeuristicFactor)
	}
	if c.Count < 0 {
		return fmt.Errorf("count cannot be negative, got %d", c.Count)
	}
	return nil
}

// ApplyDefaults fills in any missing values with defaults.
func (c *Config) ApplyDefaults() {
	if c.NetReferenceBytesPerSec == 0 {
		c.NetReferenceBytesPerSec = DefaultNetReferenceBytesPerSec
	}
	if c.GPUHeuristicFactor == 0 {
		c.GPUHeuristicFactor = DefaultGPUHeuristicFactor
	}
	if c.Hostname == "" {
		c.Hostname, _ = os.Hostname()
	}
	if c.SessionID == "" {
		c.SessionID = uuid.NewString()
	}
}
