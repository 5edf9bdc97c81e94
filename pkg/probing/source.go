// Package probing reads host counters: CPU utilization, memory, network
// transfer totals, uptime, and the frequency files the kernel exposes under
// sysfs.
package probing

import (
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"github.com/code-with-cj/cj-resource-monitor/pkg/metrics"
)

// Source is the counter supply consumed by the sampler. Implementations
// return an error when a reading is unavailable and never substitute values
// themselves; substitution policy belongs to the caller.
type Source interface {
	// CPUPercent reports system-wide CPU utilization accumulated since the
	// previous call. The first reading after construction is undefined and
	// callers are expected to discard it.
	CPUPercent() (float64, error)

	// CPUFrequencyMHz reports the current average core frequency. Hosts
	// without a readable frequency return an error.
	CPUFrequencyMHz() (float64, error)

	// Memory reports physical memory occupancy.
	Memory() (metrics.MemoryStats, error)

	// NetCounters reports cumulative transfer totals aggregated across all
	// interfaces.
	NetCounters() (metrics.NetCounters, error)

	// UptimeSeconds reports seconds since boot.
	UptimeSeconds() (uint64, error)
}

// SystemSource reads counters from the running host.
type SystemSource struct{}

// NewSystemSource returns a Source backed by the local kernel interfaces.
func NewSystemSource() *SystemSource {
	return &SystemSource{}
}

func (s *SystemSource) CPUPercent() (float64, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return 0, fmt.Errorf("probing: cpu percent: %w", err)
	}
	if len(percents) == 0 {
		return 0, errors.New("probing: cpu percent: no data")
	}
	return percents[0], nil
}

func (s *SystemSource) CPUFrequencyMHz() (float64, error) {
	if mhz, err := sysfsFrequencyMHz(sysCPUFreqPattern); err == nil {
		return mhz, nil
	}
	return cpuinfoFrequencyMHz(procCPUInfoPath)
}

func (s *SystemSource) Memory() (metrics.MemoryStats, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return metrics.MemoryStats{}, fmt.Errorf("probing: virtual memory: %w", err)
	}
	return metrics.MemoryStats{
		TotalBytes:     vm.Total,
		AvailableBytes: vm.Available,
		UsedPercent:    vm.UsedPercent,
	}, nil
}

func (s *SystemSource) NetCounters() (metrics.NetCounters, error) {
	counters, err := net.IOCounters(false)
	if err != nil {
		return metrics.NetCounters{}, fmt.Errorf("probing: net counters: %w", err)
	}
	if len(counters) == 0 {
		return metrics.NetCounters{}, errors.New("probing: net counters: no interfaces")
	}
	return metrics.NetCounters{
		BytesSent: counters[0].BytesSent,
		BytesRecv: counters[0].BytesRecv,
	}, nil
}

func (s *SystemSource) UptimeSeconds() (uint64, error) {
	up, err := host.Uptime()
	if err != nil {
		return 0, fmt.Errorf("probing: uptime: %w", err)
	}
	return up, nil
}
