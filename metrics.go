package prealloc

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting storage metrics.
// Implement this interface to integrate with monitoring systems; the
// telemetry/prom and telemetry/otelmetric packages provide ready-made ones.
//
// Collectors are shared between Arrays and must be safe for concurrent use.
type MetricsCollector interface {
	// RecordReserve is called after each attempt to obtain an overflow region.
	// bytes is the size of the request, err is nil if it was granted.
	RecordReserve(tag Tag, bytes int64, err error)

	// RecordRelease is called after an overflow region is given back.
	RecordRelease(tag Tag, bytes int64)

	// RecordSpill is called when an Array leaves its inline buffer.
	RecordSpill(tag Tag)

	// RecordSwap is called after each Swap. fast reports whether the
	// constant-time region exchange was used.
	RecordSwap(fast bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordReserve(Tag, int64, error) {}
func (NoopMetricsCollector) RecordRelease(Tag, int64)        {}
func (NoopMetricsCollector) RecordSpill(Tag)                 {}
func (NoopMetricsCollector) RecordSwap(bool)                 {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ReserveCount  atomic.Int64
	ReserveErrors atomic.Int64
	ReserveBytes  atomic.Int64
	ReleaseCount  atomic.Int64
	ReleaseBytes  atomic.Int64
	SpillCount    atomic.Int64
	FastSwaps     atomic.Int64
	SlowSwaps     atomic.Int64
}

// RecordReserve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReserve(_ Tag, bytes int64, err error) {
	b.ReserveCount.Add(1)
	if err != nil {
		b.ReserveErrors.Add(1)
		return
	}
	b.ReserveBytes.Add(bytes)
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(_ Tag, bytes int64) {
	b.ReleaseCount.Add(1)
	b.ReleaseBytes.Add(bytes)
}

// RecordSpill implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSpill(Tag) {
	b.SpillCount.Add(1)
}

// RecordSwap implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSwap(fast bool) {
	if fast {
		b.FastSwaps.Add(1)
	} else {
		b.SlowSwaps.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	reserved := b.ReserveBytes.Load()
	released := b.ReleaseBytes.Load()
	return BasicMetricsStats{
		ReserveCount:  b.ReserveCount.Load(),
		ReserveErrors: b.ReserveErrors.Load(),
		ReserveBytes:  reserved,
		ReleaseCount:  b.ReleaseCount.Load(),
		ReleaseBytes:  released,
		LiveBytes:     reserved - released,
		SpillCount:    b.SpillCount.Load(),
		FastSwaps:     b.FastSwaps.Load(),
		SlowSwaps:     b.SlowSwaps.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ReserveCount  int64
	ReserveErrors int64
	ReserveBytes  int64
	ReleaseCount  int64
	ReleaseBytes  int64
	LiveBytes     int64
	SpillCount    int64
	FastSwaps     int64
	SlowSwaps     int64
}
