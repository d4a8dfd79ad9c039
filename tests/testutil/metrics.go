package testutil

import (
	"context"
	"testing"

	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

// NewShopMetrics returns shop metrics whose readings are collected on demand
func NewShopMetrics(t *testing.T) (*telemetry.ShopMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := telemetry.NewMeterProviderWithReader(reader, "test-service", zap.NewNop())
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := telemetry.NewShopMetrics(mp.Meter("shop"))
	require.NoError(t, err)
	return m, reader
}

// MutationCounts sums shop_mutations_total keyed by "resource/operation"
func MutationCounts(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "shop_mutations_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "shop_mutations_total is not an int64 sum")
			for _, dp := range sum.DataPoints {
				resource, _ := dp.Attributes.Value(telemetry.AttrResource)
				op, _ := dp.Attributes.Value(telemetry.AttrOperation)
				out[resource.AsString()+"/"+op.AsString()] += dp.Value
			}
		}
	}
	return out
}
