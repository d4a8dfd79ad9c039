package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// collect reads everything recorded so far and indexes it by instrument name.
func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func newManualProvider(t *testing.T) (*telemetry.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := telemetry.NewMeterProviderWithReader(reader, "test-service", zap.NewNop())
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp, reader
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	cfg := telemetry.MetricsConfig{
		Enabled:        false,
		ExportInterval: 30 * time.Second,
		ServiceName:    "test-service",
	}

	mp, err := telemetry.NewMeterProvider(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.Equal(t, cfg, mp.GetConfig())
	assert.NotNil(t, mp.Meter("noop"))
	assert.NoError(t, mp.ForceFlush(ctx))
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestCounter(t *testing.T) {
	mp, reader := newManualProvider(t)
	ctx := context.Background()

	c, err := telemetry.NewCounter(mp.Meter("test"), "test_total", "test counter", "{op}")
	require.NoError(t, err)

	c.Inc(ctx)
	c.Add(ctx, 4, telemetry.AttrResource.String("order"))

	got := collect(t, reader)
	require.Contains(t, got, "test_total")
	assert.Equal(t, int64(5), sumOf(t, got["test_total"]))
}

func TestUpDownCounter(t *testing.T) {
	mp, reader := newManualProvider(t)
	ctx := context.Background()

	c, err := telemetry.NewUpDownCounter(mp.Meter("test"), "in_flight", "in flight", "{request}")
	require.NoError(t, err)

	c.Add(ctx, 3)
	c.Add(ctx, -2)

	got := collect(t, reader)
	assert.Equal(t, int64(1), sumOf(t, got["in_flight"]))
}

func TestHistogram(t *testing.T) {
	mp, reader := newManualProvider(t)
	ctx := context.Background()

	h, err := telemetry.NewHistogram(mp.Meter("test"), telemetry.HistogramOpts{
		Name:       "latency_seconds",
		Unit:       "s",
		Boundaries: telemetry.HTTPDurationBuckets,
	})
	require.NoError(t, err)

	h.Record(ctx, 0.02)
	h.RecordDuration(ctx, 1500*time.Millisecond)

	got := collect(t, reader)
	hist, ok := got["latency_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	dp := hist.DataPoints[0]
	assert.Equal(t, uint64(2), dp.Count)
	assert.InDelta(t, 1.52, dp.Sum, 1e-9)
	assert.Equal(t, telemetry.HTTPDurationBuckets, dp.Bounds)
}
