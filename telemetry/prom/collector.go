// Package prom provides a Prometheus implementation of
// prealloc.MetricsCollector.
//
//	c, err := prom.NewCollector(prometheus.DefaultRegisterer, "myapp")
//	if err != nil {
//	    return err
//	}
//	arr := prealloc.New[int, [16]int, prealloc.Plain[int]](prealloc.WithMetricsCollector(c))
package prom

import (
	"fmt"

	"github.com/hupe1980/prealloc"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultGranted = "granted"
	resultRefused = "refused"
)

// Collector exports overflow storage events as Prometheus metrics, labeled
// by allocation tag.
type Collector struct {
	reserves      *prometheus.CounterVec
	reservedBytes *prometheus.CounterVec
	releasedBytes *prometheus.CounterVec
	liveBytes     *prometheus.GaugeVec
	spills        *prometheus.CounterVec
	swaps         *prometheus.CounterVec
}

var _ prealloc.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
// If reg is nil, prometheus.DefaultRegisterer is used. namespace may be
// empty.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		reserves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prealloc",
			Name:      "reserve_total",
			Help:      "Overflow region requests by tag and result.",
		}, []string{"tag", "result"}),
		reservedBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prealloc",
			Name:      "reserved_bytes_total",
			Help:      "Bytes granted for overflow regions.",
		}, []string{"tag"}),
		releasedBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prealloc",
			Name:      "released_bytes_total",
			Help:      "Bytes of overflow regions given back.",
		}, []string{"tag"}),
		liveBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "prealloc",
			Name:      "live_bytes",
			Help:      "Bytes currently held in overflow regions.",
		}, []string{"tag"}),
		spills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prealloc",
			Name:      "spills_total",
			Help:      "Transitions from the inline buffer to an overflow region.",
		}, []string{"tag"}),
		swaps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prealloc",
			Name:      "swaps_total",
			Help:      "Swaps by kind (fast region exchange or element move).",
		}, []string{"kind"}),
	}

	for _, col := range []prometheus.Collector{
		c.reserves, c.reservedBytes, c.releasedBytes, c.liveBytes, c.spills, c.swaps,
	} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("prom: register: %w", err)
		}
	}

	return c, nil
}

// RecordReserve implements prealloc.MetricsCollector.
func (c *Collector) RecordReserve(tag prealloc.Tag, bytes int64, err error) {
	if err != nil {
		c.reserves.WithLabelValues(string(tag), resultRefused).Inc()
		return
	}
	c.reserves.WithLabelValues(string(tag), resultGranted).Inc()
	c.reservedBytes.WithLabelValues(string(tag)).Add(float64(bytes))
	c.liveBytes.WithLabelValues(string(tag)).Add(float64(bytes))
}

// RecordRelease implements prealloc.MetricsCollector.
func (c *Collector) RecordRelease(tag prealloc.Tag, bytes int64) {
	c.releasedBytes.WithLabelValues(string(tag)).Add(float64(bytes))
	c.liveBytes.WithLabelValues(string(tag)).Sub(float64(bytes))
}

// RecordSpill implements prealloc.MetricsCollector.
func (c *Collector) RecordSpill(tag prealloc.Tag) {
	c.spills.WithLabelValues(string(tag)).Inc()
}

// RecordSwap implements prealloc.MetricsCollector.
func (c *Collector) RecordSwap(fast bool) {
	kind := "slow"
	if fast {
		kind = "fast"
	}
	c.swaps.WithLabelValues(kind).Inc()
}
