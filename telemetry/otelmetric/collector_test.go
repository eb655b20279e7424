package otelmetric

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/prealloc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestCollector(t *testing.T) (*Collector, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	c, err := NewCollector(provider.Meter("prealloc_test"))
	require.NoError(t, err)
	return c, reader
}

// sum returns the value of the data point of the named instrument whose
// attributes contain every kv pair.
func sum(t *testing.T, reader *sdkmetric.ManualReader, name string, kvs ...attribute.KeyValue) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			data, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			for _, dp := range data.DataPoints {
				if matches(dp.Attributes, kvs) {
					return dp.Value
				}
			}
		}
	}
	return 0
}

func matches(set attribute.Set, kvs []attribute.KeyValue) bool {
	for _, kv := range kvs {
		v, ok := set.Value(kv.Key)
		if !ok || v != kv.Value {
			return false
		}
	}
	return true
}

func TestCollector_Records(t *testing.T) {
	c, reader := newTestCollector(t)

	c.RecordReserve("keys", 64, nil)
	c.RecordReserve("keys", 128, nil)
	c.RecordReserve("keys", 256, errors.New("no budget"))
	c.RecordRelease("keys", 64)
	c.RecordSpill("keys")
	c.RecordSwap(true)
	c.RecordSwap(false)

	keys := attrTag.String("keys")
	assert.Equal(t, int64(2), sum(t, reader, ReserveCountName, keys, attrResult.String(resultGranted)))
	assert.Equal(t, int64(1), sum(t, reader, ReserveCountName, keys, attrResult.String(resultRefused)))
	assert.Equal(t, int64(192), sum(t, reader, ReserveBytesName, keys))
	assert.Equal(t, int64(64), sum(t, reader, ReleaseBytesName, keys))
	assert.Equal(t, int64(128), sum(t, reader, LiveBytesName, keys))
	assert.Equal(t, int64(1), sum(t, reader, SpillCountName, keys))
	assert.Equal(t, int64(1), sum(t, reader, SwapCountName, attrSwapKind.String(swapKindFast)))
	assert.Equal(t, int64(1), sum(t, reader, SwapCountName, attrSwapKind.String(swapKindSlow)))
}

func TestCollector_WithArray(t *testing.T) {
	c, reader := newTestCollector(t)

	a := prealloc.New[int64, [1]int64, prealloc.Plain[int64]](
		prealloc.WithMetricsCollector(c),
		prealloc.WithTag("a"),
	)
	b := prealloc.New[int64, [1]int64, prealloc.Plain[int64]](
		prealloc.WithMetricsCollector(c),
		prealloc.WithTag("b"),
	)
	for i := range int64(3) {
		require.NoError(t, a.PushBack(i))
		require.NoError(t, b.PushBack(i))
	}

	a.Swap(b)
	assert.Equal(t, int64(1), sum(t, reader, SwapCountName, attrSwapKind.String(swapKindFast)))

	// 1 -> 2 (spill) -> 4: 16 + 32 bytes granted, 16 released
	assert.Equal(t, int64(32), sum(t, reader, LiveBytesName, attrTag.String("a")))
	assert.Equal(t, int64(1), sum(t, reader, SpillCountName, attrTag.String("b")))

	a.Free()
	b.Free()
	assert.Equal(t, int64(0), sum(t, reader, LiveBytesName, attrTag.String("a")))
	assert.Equal(t, int64(0), sum(t, reader, LiveBytesName, attrTag.String("b")))
}
