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
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type meteredRow struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&meteredRow{}))
	return db
}

func TestRegisterDBMetrics_Disabled(t *testing.T) {
	db := openSQLite(t)

	m, err := telemetry.RegisterDBMetrics(db, nil, telemetry.DBMetricsConfig{Enabled: true}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, m)

	mp, _ := newManualProvider(t)
	m, err = telemetry.RegisterDBMetrics(db, mp, telemetry.DBMetricsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestRegisterDBMetrics_RecordsQueriesAndPool(t *testing.T) {
	db := openSQLite(t)
	mp, reader := newManualProvider(t)

	m, err := telemetry.RegisterDBMetrics(db, mp, telemetry.DBMetricsConfig{Enabled: true}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, m)
	t.Cleanup(m.Stop)

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&meteredRow{Name: "a"}).Error)
	var rows []meteredRow
	require.NoError(t, db.WithContext(ctx).Find(&rows).Error)

	got := collect(t, reader)
	require.Contains(t, got, "db_query_total")
	byOp := map[string]int64{}
	for _, dp := range got["db_query_total"].Data.(metricdata.Sum[int64]).DataPoints {
		op, _ := dp.Attributes.Value(telemetry.AttrDBOperation)
		byOp[op.AsString()] += dp.Value
	}
	assert.Equal(t, int64(1), byOp["INSERT"])
	assert.Equal(t, int64(1), byOp["SELECT"])

	require.Contains(t, got, "db_query_duration_seconds")
	require.Contains(t, got, "db_pool_connections_max")
	maxGauge := got["db_pool_connections_max"].Data.(metricdata.Gauge[int64])
	require.Len(t, maxGauge.DataPoints, 1)
	assert.Equal(t, int64(1), maxGauge.DataPoints[0].Value)
}

func TestDBMetrics_SlowQueries(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := telemetry.NewMeterProviderWithReader(reader, "test", zap.NewNop())
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := telemetry.NewDBMetrics(mp.Meter("db.client"), nil, telemetry.DBMetricsConfig{SlowQueryThreshold: 10 * time.Millisecond}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordQuery(ctx, "select", "orders", time.Millisecond)
	m.RecordQuery(ctx, "select", "orders", 50*time.Millisecond)
	m.RecordQuery(ctx, "", "", 50*time.Millisecond)

	got := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, got["db_slow_query_total"]))
	assert.Equal(t, int64(3), sumOf(t, got["db_query_total"]))
	assert.NotContains(t, got, "db_pool_connections")

	m.Stop()
	m.Stop()
}
