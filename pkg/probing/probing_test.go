package probing

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFreqFile(t *testing.T, dir, cpu, content string) {
	t.Helper()
	cpufreq := filepath.Join(dir, cpu, "cpufreq")
	require.NoError(t, os.MkdirAll(cpufreq, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cpufreq, "scaling_cur_freq"), []byte(content), 0o644))
}

func TestSysfsFrequencyAveragesCores(t *testing.T) {
	dir := t.TempDir()
	writeFreqFile(t, dir, "cpu0", "2400000\n")
	writeFreqFile(t, dir, "cpu1", "2600000\n")

	mhz, err := sysfsFrequencyMHz(filepath.Join(dir, "cpu*/cpufreq/scaling_cur_freq"))
	require.NoError(t, err)
	assert.InDelta(t, 2500.0, mhz, 0.001)
}

func TestSysfsFrequencySkipsUnreadableCores(t *testing.T) {
	dir := t.TempDir()
	writeFreqFile(t, dir, "cpu0", "3000000\n")
	writeFreqFile(t, dir, "cpu1", "garbage\n")
	writeFreqFile(t, dir, "cpu2", "0\n")

	mhz, err := sysfsFrequencyMHz(filepath.Join(dir, "cpu*/cpufreq/scaling_cur_freq"))
	require.NoError(t, err)
	assert.InDelta(t, 3000.0, mhz, 0.001)
}

func TestSysfsFrequencyNoEntries(t *testing.T) {
	dir := t.TempDir()

	_, err := sysfsFrequencyMHz(filepath.Join(dir, "cpu*/cpufreq/scaling_cur_freq"))
	assert.Error(t, err)
}

func TestSysfsFrequencyAllEntriesUnreadable(t *testing.T) {
	dir := t.TempDir()
	writeFreqFile(t, dir, "cpu0", "not-a-number\n")

	_, err := sysfsFrequencyMHz(filepath.Join(dir, "cpu*/cpufreq/scaling_cur_freq"))
	assert.Error(t, err)
}

func TestCPUInfoFrequency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpuinfo")
	content := "processor\t: 0\n" +
		"model name\t: Example CPU @ 2.90GHz\n" +
		"cpu MHz\t\t: 2894.560\n" +
		"processor\t: 1\n" +
		"cpu MHz\t\t: 1200.000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	mhz, err := cpuinfoFrequencyMHz(path)
	require.NoError(t, err)
	assert.InDelta(t, 2894.56, mhz, 0.001)
}

func TestCPUInfoFrequencyMissingLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpuinfo")
	require.NoError(t, os.WriteFile(path, []byte("processor\t: 0\nflags\t: fpu\n"), 0o644))

	_, err := cpuinfoFrequencyMHz(path)
	assert.Error(t, err)
}

func TestCPUInfoFrequencyMissingFile(t *testing.T) {
	_, err := cpuinfoFrequencyMHz(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestSystemSourceLive(t *testing.T) {
	if _, err := os.Stat("/proc/stat"); err != nil {
		t.Skip("host counters not available")
	}

	src := NewSystemSource()

	pct, err := src.CPUPercent()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pct, 0.0)
	assert.LessOrEqual(t, pct, 100.0)

	ms, err := src.Memory()
	require.NoError(t, err)
	assert.Greater(t, ms.TotalBytes, uint64(0))
	assert.GreaterOrEqual(t, ms.UsedPercent, 0.0)
	assert.LessOrEqual(t, ms.UsedPercent, 100.0)

	_, err = src.NetCounters()
	require.NoError(t, err)

	up, err := src.UptimeSeconds()
	require.NoError(t, err)
	assert.Greater(t, up, uint64(0))
}

func TestKernelInfo(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("uname identity test is linux only")
	}
	info := KernelInfo()
	assert.NotEmpty(t, info)
	assert.NotEqual(t, "unknown", info)
}
