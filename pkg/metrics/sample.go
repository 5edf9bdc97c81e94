// Package metrics defines the value types published by the sampling engine.
package metrics

import (
	"math"
	"time"
)

// Sample is the point-in-time snapshot assembled once per tick and handed to
// downstream consumers. All percent fields are clamped to [0, 100] before
// publication. A zero CPUFrequencyMHz means the frequency is unknown on this
// host.
type Sample struct {
	Timestamp         time.Time `json:"timestamp"`
	CPUPercent        float64   `json:"cpu_percent"`
	CPUFrequencyMHz   float64   `json:"cpu_frequency_mhz"`
	RAMPercent        float64   `json:"ram_percent"`
	RAMTotalBytes     uint64    `json:"ram_total_bytes"`
	RAMAvailableBytes uint64    `json:"ram_available_bytes"`
	GPUPercent        float64   `json:"gpu_percent"`
	GPULabel          string    `json:"gpu_label"`
	NetBytesPerSec    float64   `json:"net_bytes_per_sec"`
	NetPercent        float64   `json:"net_percent"`
	UptimeSeconds     uint64    `json:"uptime_seconds"`
}

// NetCounters holds cumulative transfer counters since boot, aggregated
// across interfaces. Counters normally grow monotonically but may reset when
// an interface restarts or a counter wraps.
type NetCounters struct {
	BytesSent uint64
	BytesRecv uint64
}

// MemoryStats captures physical memory occupancy.
type MemoryStats struct {
	TotalBytes     uint64
	AvailableBytes uint64
	UsedPercent    float64
}

// ClampPercent bounds v to the inclusive range [0, 100]. NaN and negative
// values collapse to 0.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
