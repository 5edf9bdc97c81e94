package sampling

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/code-with-cj/cj-resource-monitor/pkg/config"
	"github.com/code-with-cj/cj-resource-monitor/pkg/metrics"
	"github.com/code-with-cj/cj-resource-monitor/pkg/probing"
	"github.com/code-with-cj/cj-resource-monitor/pkg/sensing"
)

// netState is the cross-tick mutable state, the counters and wall time of
// the previous tick. Owned exclusively by one Sampler.
type netState struct {
	counters metrics.NetCounters
	at       time.Time
}

// Sampler assembles one Sample per Tick. Ticks are serialized by an internal
// lock. Tick never returns an error; failing metrics are substituted.
type Sampler struct {
	mu     sync.Mutex
	source probing.Source
	gpu    *GPUReader
	log    *zap.Logger
	netRef float64
	prev   netState
	last   metrics.Sample
	now    func() time.Time
}

// New wires a Sampler. It performs one warm-up CPU read, whose value is
// undefined and discarded, and primes the network counter state so the
// first Tick has a baseline.
func New(cfg *config.Config, source probing.Source, backend sensing.Backend, logger *zap.Logger) *Sampler {
	s := &Sampler{
		source: source,
		gpu:    NewGPUReader(backend, cfg.GPUHeuristicFactor, logger),
		log:    logger,
		netRef: cfg.NetReferenceBytesPerSec,
		now:    time.Now,
	}

	if _, err := source.CPUPercent(); err != nil {
		logger.Warn("cpu warm-up read failed", zap.Error(err))
	}

	counters, err := source.NetCounters()
	if err != nil {
		logger.Warn("network counter priming failed", zap.Error(err))
	}
	s.prev = netState{counters: counters, at: s.now()}

	return s
}

// Tick assembles a best-effort Sample. A failing metric is logged and
// replaced: last known value for CPU, RAM, and uptime, the zero unknown
// marker for frequency, zeros for network, the heuristic for GPU. The tick
// itself always completes.
func (s *Sampler) Tick() metrics.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	counters, countersErr := s.source.NetCounters()

	sample := metrics.Sample{Timestamp: now}

	cpu, err := s.source.CPUPercent()
	if err != nil {
		s.log.Warn("cpu usage read failed", zap.Error(err))
		cpu = s.last.CPUPercent
	}
	sample.CPUPercent = metrics.ClampPercent(cpu)

	if mhz, err := s.source.CPUFrequencyMHz(); err != nil {
		s.log.Debug("cpu frequency unavailable", zap.Error(err))
	} else {
		sample.CPUFrequencyMHz = mhz
	}

	if ms, err := s.source.Memory(); err != nil {
		s.log.Warn("memory read failed", zap.Error(err))
		sample.RAMPercent = s.last.RAMPercent
		sample.RAMTotalBytes = s.last.RAMTotalBytes
		sample.RAMAvailableBytes = s.last.RAMAvailableBytes
	} else {
		sample.RAMPercent = metrics.ClampPercent(ms.UsedPercent)
		sample.RAMTotalBytes = ms.TotalBytes
		sample.RAMAvailableBytes = ms.AvailableBytes
	}

	if up, err := s.source.UptimeSeconds(); err != nil {
		s.log.Warn("uptime read failed", zap.Error(err))
		sample.UptimeSeconds = s.last.UptimeSeconds
	} else {
		sample.UptimeSeconds = up
	}

	gpu := s.gpu.Read(sample.CPUPercent)
	sample.GPUPercent = gpu.Percent
	sample.GPULabel = gpu.Label

	if countersErr != nil {
		s.log.Warn("network counter read failed", zap.Error(countersErr))
	} else {
		sample.NetBytesPerSec, sample.NetPercent = NetRate(s.prev.counters, s.prev.at, counters, now, s.netRef)
		s.prev = netState{counters: counters, at: now}
	}

	s.last = sample
	return sample
}
