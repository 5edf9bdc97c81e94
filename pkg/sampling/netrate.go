// Package sampling assembles point-in-time telemetry samples from a counter
// source and a sensor backend on a fixed cadence.
package sampling

import (
	"math"
	"time"

	"github.com/code-with-cj/cj-resource-monitor/pkg/metrics"
)

// NetRate converts two timestamped cumulative counter snapshots into
// throughput. Non-positive elapsed time yields zeros. A counter that ran
// backwards (interface restart, wrap) contributes zero for that direction,
// never a negative rate. percent saturates at 100 when the rate meets or
// exceeds refBytesPerSec.
func NetRate(prev metrics.NetCounters, prevAt time.Time, curr metrics.NetCounters, currAt time.Time, refBytesPerSec float64) (bytesPerSec, percent float64) {
	dt := currAt.Sub(prevAt).Seconds()
	if dt <= 0 {
		return 0, 0
	}

	delta := counterDelta(curr.BytesSent, prev.BytesSent) + counterDelta(curr.BytesRecv, prev.BytesRecv)
	bytesPerSec = float64(delta) / dt
	if refBytesPerSec > 0 {
		percent = math.Min(bytesPerSec/refBytesPerSec*100, 100)
	}
	return bytesPerSec, percent
}

func counterDelta(curr, prev uint64) uint64 {
	if curr < prev {
		return 0
	}
	return curr - prev
}
