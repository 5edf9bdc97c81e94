package sensing

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"go.uber.org/zap"
)

// Well-known install locations for the NVIDIA management library, checked
// before any init attempt.
var nvmlLibraryPaths = []string{
	"/usr/lib/x86_64-linux-gnu/libnvidia-ml.so.1",
	"/usr/lib64/libnvidia-ml.so.1",
	"/usr/lib/libnvidia-ml.so.1",
}

// Open decides the sensor capability for the lifetime of the process.
// The pipeline: locate the library on disk, initialize NVML, count devices.
// Any stage failing yields the absent backend; Open never returns an error.
func Open(logger *zap.Logger) Backend {
	path, ok := locateLibrary(nvmlLibraryPaths)
	if !ok {
		logger.Warn("nvml library not found, gpu readings fall back to heuristic",
			zap.Strings("searched", nvmlLibraryPaths))
		return Absent()
	}

	if ret := nvml.Init(); !errors.Is(ret, nvml.SUCCESS) {
		logger.Warn("nvml init failed, gpu readings fall back to heuristic",
			zap.String("library", path),
			zap.String("nvml_error", nvml.ErrorString(ret)))
		return Absent()
	}

	count, ret := nvml.DeviceGetCount()
	if !errors.Is(ret, nvml.SUCCESS) || count == 0 {
		nvml.Shutdown()
		logger.Warn("no nvml devices, gpu readings fall back to heuristic",
			zap.String("library", path),
			zap.Int("devices", count))
		return Absent()
	}

	logger.Info("nvml backend ready",
		zap.String("library", path),
		zap.Int("devices", count))
	return &nvmlBackend{log: logger}
}

func locateLibrary(candidates []string) (string, bool) {
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

type nvmlBackend struct {
	log       *zap.Logger
	closeOnce sync.Once
}

func (b *nvmlBackend) Available() bool { return true }

// Devices re-enumerates handles on every call. Handles are not cached, so a
// device that resets mid-run reappears on the next pass.
func (b *nvmlBackend) Devices() ([]Device, error) {
	count, ret := nvml.DeviceGetCount()
	if !errors.Is(ret, nvml.SUCCESS) {
		return nil, fmt.Errorf("sensing: device count: %s", nvml.ErrorString(ret))
	}

	devices := make([]Device, 0, count)
	for i := 0; i < count; i++ {
		handle, ret := nvml.DeviceGetHandleByIndex(i)
		if !errors.Is(ret, nvml.SUCCESS) {
			b.log.Debug("nvml device handle unavailable",
				zap.Int("index", i),
				zap.String("nvml_error", nvml.ErrorString(ret)))
			continue
		}
		devices = append(devices, readDevice(handle, i))
	}
	return devices, nil
}

func readDevice(device nvml.Device, index int) Device {
	d := Device{
		Name: fmt.Sprintf("GPU %d", index),
		Type: DeviceGPUNvidia,
	}
	if name, ret := device.GetName(); errors.Is(ret, nvml.SUCCESS) {
		d.Name = name
	}

	if util, ret := device.GetUtilizationRates(); errors.Is(ret, nvml.SUCCESS) {
		d.Sensors = append(d.Sensors,
			Sensor{Name: "GPU Core", Type: SensorLoad, Value: float64(util.Gpu), Valid: true},
			Sensor{Name: "GPU Memory Controller", Type: SensorLoad, Value: float64(util.Memory), Valid: true},
		)
	} else {
		d.Sensors = append(d.Sensors, Sensor{Name: "GPU Core", Type: SensorLoad})
	}
	if enc, _, ret := device.GetEncoderUtilization(); errors.Is(ret, nvml.SUCCESS) {
		d.Sensors = append(d.Sensors,
			Sensor{Name: "GPU Video Engine", Type: SensorLoad, Value: float64(enc), Valid: true})
	}

	if temp, ret := device.GetTemperature(nvml.TEMPERATURE_GPU); errors.Is(ret, nvml.SUCCESS) {
		d.Sensors = append(d.Sensors,
			Sensor{Name: "GPU Core", Type: SensorTemperature, Value: float64(temp), Valid: true})
	}
	if clock, ret := device.GetClockInfo(nvml.CLOCK_GRAPHICS); errors.Is(ret, nvml.SUCCESS) {
		d.Sensors = append(d.Sensors,
			Sensor{Name: "GPU Core", Type: SensorClock, Value: float64(clock), Valid: true})
	}
	if fan, ret := device.GetFanSpeed(); errors.Is(ret, nvml.SUCCESS) {
		d.Sensors = append(d.Sensors,
			Sensor{Name: "GPU Fan", Type: SensorFan, Value: float64(fan), Valid: true})
	}
	if power, ret := device.GetPowerUsage(); errors.Is(ret, nvml.SUCCESS) {
		d.Sensors = append(d.Sensors,
			Sensor{Name: "GPU Package", Type: SensorPower, Value: float64(power) / 1000.0, Valid: true})
	}

	return d
}

// Close shuts NVML down once; repeat calls are no-ops.
func (b *nvmlBackend) Close() error {
	b.closeOnce.Do(func() {
		nvml.Shutdown()
	})
	return nil
}
