package probing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	sysCPUFreqPattern = "/sys/devices/system/cpu/cpu*/cpufreq/scaling_cur_freq"
	procCPUInfoPath   = "/proc/cpuinfo"
)

// sysfsFrequencyMHz averages scaling_cur_freq across all cores. The kernel
// reports kHz.
func sysfsFrequencyMHz(pattern string) (float64, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return 0, fmt.Errorf("probing: cpu frequency: %w", err)
	}
	if len(files) == 0 {
		return 0, errors.New("probing: cpu frequency: no cpufreq entries")
	}

	var total, count int64
	for _, f := range files {
		val, err := readInt64(f)
		if err != nil || val <= 0 {
			continue
		}
		total += val
		count++
	}
	if count == 0 {
		return 0, errors.New("probing: cpu frequency: no readable cpufreq entries")
	}
	return float64(total) / float64(count) / 1000.0, nil
}

// cpuinfoFrequencyMHz takes the first "cpu MHz" line of /proc/cpuinfo.
func cpuinfoFrequencyMHz(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("probing: cpu frequency: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "cpu MHz") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		mhz, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return 0, fmt.Errorf("probing: cpu frequency: %w", err)
		}
		return mhz, nil
	}
	return 0, errors.New("probing: cpu frequency: no cpu MHz line")
}

func readInt64(path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
}
