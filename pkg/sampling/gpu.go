package sampling

import (
	"strings"

	"go.uber.org/zap"

	"github.com/code-with-cj/cj-resource-monitor/pkg/config"
	"github.com/code-with-cj/cj-resource-monitor/pkg/metrics"
	"github.com/code-with-cj/cj-resource-monitor/pkg/sensing"
)

// Load sensors whose lowercased name contains any of these fragments count
// as overall GPU utilization.
var gpuLoadKeywords = []string{"gpu", "core", "load", "3d", "graphics"}

// GPUReading is a resolved utilization value labeled with its origin, either
// a device name or the heuristic label.
type GPUReading struct {
	Percent float64
	Label   string
}

// A gpuStrategy inspects the enumerated devices and either produces a
// reading or passes.
type gpuStrategy func([]sensing.Device) (GPUReading, bool)

var gpuStrategies = []gpuStrategy{keywordLoadMax, firstLoadSensor}

// GPUReader resolves GPU utilization through an ordered strategy chain:
// keyword-filtered sensor max, first load sensor, CPU-derived heuristic.
type GPUReader struct {
	backend sensing.Backend
	factor  float64
	log     *zap.Logger
}

func NewGPUReader(backend sensing.Backend, factor float64, logger *zap.Logger) *GPUReader {
	return &GPUReader{backend: backend, factor: factor, log: logger}
}

// Read resolves utilization for one tick. cpuPercent feeds the heuristic
// when no sensor yields a value. The heuristic result is an estimate, not a
// measurement; its label is always config.HeuristicGPULabel so consumers can
// tell the two apart.
func (r *GPUReader) Read(cpuPercent float64) GPUReading {
	if !r.backend.Available() {
		return r.heuristic(cpuPercent)
	}

	devices, err := r.backend.Devices()
	if err != nil {
		r.log.Warn("sensor enumeration failed, using heuristic for this tick", zap.Error(err))
		return r.heuristic(cpuPercent)
	}

	for _, attempt := range gpuStrategies {
		if reading, ok := attempt(devices); ok {
			reading.Percent = metrics.ClampPercent(reading.Percent)
			return reading
		}
	}
	return r.heuristic(cpuPercent)
}

// keywordLoadMax takes, per device in backend order, the maximum over load
// sensors whose name matches the keyword list. The first device with a
// non-zero maximum wins.
func keywordLoadMax(devices []sensing.Device) (GPUReading, bool) {
	for _, d := range devices {
		if !d.Type.IsGPU() {
			continue
		}
		max := 0.0
		for _, s := range d.Sensors {
			if !isLoadSensor(s) || !keywordMatch(s.Name) {
				continue
			}
			if s.Value > max {
				max = s.Value
			}
		}
		if max > 0 {
			return GPUReading{Percent: max, Label: d.Name}, true
		}
	}
	return GPUReading{}, false
}

// firstLoadSensor covers devices whose load sensors match no keyword at all:
// the first load sensor in backend order is taken as-is. The first device
// with a non-zero value wins.
func firstLoadSensor(devices []sensing.Device) (GPUReading, bool) {
	for _, d := range devices {
		if !d.Type.IsGPU() || hasKeywordLoad(d) {
			continue
		}
		for _, s := range d.Sensors {
			if !isLoadSensor(s) {
				continue
			}
			if s.Value > 0 {
				return GPUReading{Percent: s.Value, Label: d.Name}, true
			}
			break
		}
	}
	return GPUReading{}, false
}

func hasKeywordLoad(d sensing.Device) bool {
	for _, s := range d.Sensors {
		if isLoadSensor(s) && keywordMatch(s.Name) {
			return true
		}
	}
	return false
}

// Invalid sensors are treated as nonexistent everywhere.
func isLoadSensor(s sensing.Sensor) bool {
	return s.Type == sensing.SensorLoad && s.Valid
}

func keywordMatch(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range gpuLoadKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (r *GPUReader) heuristic(cpuPercent float64) GPUReading {
	return GPUReading{
		Percent: metrics.ClampPercent(cpuPercent * r.factor),
		Label:   config.HeuristicGPULabel,
	}
}
