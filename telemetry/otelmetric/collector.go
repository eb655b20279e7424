// Package otelmetric provides an OpenTelemetry implementation of
// prealloc.MetricsCollector.
//
//	c, err := otelmetric.NewCollector(otel.Meter("myapp"))
//	if err != nil {
//	    return fmt.Errorf("create prealloc metrics: %w", err)
//	}
//	arr := prealloc.New[int, [16]int, prealloc.Plain[int]](prealloc.WithMetricsCollector(c))
//
// The prealloc.MetricsCollector methods carry no context, so measurements
// are recorded with context.Background().
package otelmetric

import (
	"context"
	"fmt"

	"github.com/hupe1980/prealloc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names.
const (
	ReserveCountName = "prealloc.reserve.count"
	ReserveBytesName = "prealloc.reserve.bytes"
	ReleaseBytesName = "prealloc.release.bytes"
	LiveBytesName    = "prealloc.live.bytes"
	SpillCountName   = "prealloc.spill.count"
	SwapCountName    = "prealloc.swap.count"
)

const (
	attrTag      = attribute.Key("prealloc.tag")
	attrResult   = attribute.Key("prealloc.result")
	attrSwapKind = attribute.Key("prealloc.swap.kind")

	resultGranted = "granted"
	resultRefused = "refused"
	swapKindFast  = "fast"
	swapKindSlow  = "slow"
)

// Collector records overflow storage events through an OpenTelemetry meter.
//
// Thread Safety: Safe for concurrent use after creation.
type Collector struct {
	reserves     metric.Int64Counter
	reserveBytes metric.Int64Counter
	releaseBytes metric.Int64Counter
	liveBytes    metric.Int64UpDownCounter
	spills       metric.Int64Counter
	swaps        metric.Int64Counter
}

var _ prealloc.MetricsCollector = (*Collector)(nil)

// NewCollector creates all instruments on meter.
// Returns an error if any instrument cannot be created.
func NewCollector(meter metric.Meter) (*Collector, error) {
	c := &Collector{}
	var err error

	c.reserves, err = meter.Int64Counter(
		ReserveCountName,
		metric.WithDescription("Overflow region requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", ReserveCountName, err)
	}

	c.reserveBytes, err = meter.Int64Counter(
		ReserveBytesName,
		metric.WithDescription("Bytes granted for overflow regions"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", ReserveBytesName, err)
	}

	c.releaseBytes, err = meter.Int64Counter(
		ReleaseBytesName,
		metric.WithDescription("Bytes of overflow regions given back"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", ReleaseBytesName, err)
	}

	c.liveBytes, err = meter.Int64UpDownCounter(
		LiveBytesName,
		metric.WithDescription("Bytes currently held in overflow regions"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", LiveBytesName, err)
	}

	c.spills, err = meter.Int64Counter(
		SpillCountName,
		metric.WithDescription("Transitions from the inline buffer to an overflow region"),
		metric.WithUnit("{spill}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", SpillCountName, err)
	}

	c.swaps, err = meter.Int64Counter(
		SwapCountName,
		metric.WithDescription("Swaps by kind"),
		metric.WithUnit("{swap}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", SwapCountName, err)
	}

	return c, nil
}

// RecordReserve implements prealloc.MetricsCollector.
func (c *Collector) RecordReserve(tag prealloc.Tag, bytes int64, err error) {
	ctx := context.Background()
	tagAttr := attrTag.String(string(tag))
	if err != nil {
		c.reserves.Add(ctx, 1, metric.WithAttributes(tagAttr, attrResult.String(resultRefused)))
		return
	}
	c.reserves.Add(ctx, 1, metric.WithAttributes(tagAttr, attrResult.String(resultGranted)))
	c.reserveBytes.Add(ctx, bytes, metric.WithAttributes(tagAttr))
	c.liveBytes.Add(ctx, bytes, metric.WithAttributes(tagAttr))
}

// RecordRelease implements prealloc.MetricsCollector.
func (c *Collector) RecordRelease(tag prealloc.Tag, bytes int64) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attrTag.String(string(tag)))
	c.releaseBytes.Add(ctx, bytes, attrs)
	c.liveBytes.Add(ctx, -bytes, attrs)
}

// RecordSpill implements prealloc.MetricsCollector.
func (c *Collector) RecordSpill(tag prealloc.Tag) {
	c.spills.Add(context.Background(), 1, metric.WithAttributes(attrTag.String(string(tag))))
}

// RecordSwap implements prealloc.MetricsCollector.
func (c *Collector) RecordSwap(fast bool) {
	kind := swapKindSlow
	if fast {
		kind = swapKindFast
	}
	c.swaps.Add(context.Background(), 1, metric.WithAttributes(attrSwapKind.String(kind)))
}
