package sampling

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/code-with-cj/cj-resource-monitor/pkg/config"
	"github.com/code-with-cj/cj-resource-monitor/pkg/metrics"
	"github.com/code-with-cj/cj-resource-monitor/pkg/sensing"
)

func BenchmarkNetRate(b *testing.B) {
	prev := metrics.NetCounters{BytesSent: 1000, BytesRecv: 2000}
	curr := metrics.NetCounters{BytesSent: 51000, BytesRecv: 102000}
	prevAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	currAt := prevAt.Add(time.Second)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NetRate(prev, prevAt, curr, currAt, testNetRef)
	}
}

func BenchmarkGPUReaderRead(b *testing.B) {
	backend := &fakeBackend{available: true, devices: []sensing.Device{
		gpuDevice("NVIDIA GeForce RTX 3080",
			loadSensor("GPU Core", 62),
			loadSensor("GPU Memory Controller", 31),
			loadSensor("GPU Video Engine", 4),
		),
	}}
	r := newReader(backend)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Read(40)
	}
}

func BenchmarkGPUReaderHeuristic(b *testing.B) {
	r := newReader(sensing.Absent())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Read(40)
	}
}

func BenchmarkSamplerTick(b *testing.B) {
	backend := &fakeBackend{available: true, devices: []sensing.Device{
		gpuDevice("NVIDIA GeForce RTX 3080", loadSensor("GPU Core", 62)),
	}}
	s := New(config.New(), healthySource(), backend, zap.NewNop())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Tick()
	}
}
