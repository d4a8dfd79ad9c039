package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database spans.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // keep bound variables in db.statement; development only
	SlowQueryThresh time.Duration // queries above this get db.slow_query=true
	DBSystem        string        // "postgresql" or "sqlite"
}

// DefaultDBTracingConfig returns the tracing defaults.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// DBTracingPlugin registers otelgorm and annotates its spans with table,
// row count and slow query markers.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a plugin; call Register to attach it.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = DefaultDBTracingConfig().SlowQueryThresh
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// Register installs otelgorm and the annotation callbacks on db.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := registerAround(db, "otel_timing", p.before, p.after); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

func (p *DBTracingPlugin) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

func (p *DBTracingPlugin) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if start, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		elapsed := time.Since(start)
		if elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
			))
		}
	}
}

// registerAround hooks before and after onto every gorm processor under
// "<prefix>:before_<op>" and "<prefix>:after_<op>".
func registerAround(db *gorm.DB, prefix string, before, after func(*gorm.DB)) error {
	cb := db.Callback()
	type hook = func(*gorm.DB)
	register := []struct {
		op     string
		before func(name string, fn hook) error
		after  func(name string, fn hook) error
	}{
		{"create",
			func(n string, fn hook) error { return cb.Create().Before("gorm:create").Register(n, fn) },
			func(n string, fn hook) error { return cb.Create().After("gorm:create").Register(n, fn) }},
		{"query",
			func(n string, fn hook) error { return cb.Query().Before("gorm:query").Register(n, fn) },
			func(n string, fn hook) error { return cb.Query().After("gorm:query").Register(n, fn) }},
		{"update",
			func(n string, fn hook) error { return cb.Update().Before("gorm:update").Register(n, fn) },
			func(n string, fn hook) error { return cb.Update().After("gorm:update").Register(n, fn) }},
		{"delete",
			func(n string, fn hook) error { return cb.Delete().Before("gorm:delete").Register(n, fn) },
			func(n string, fn hook) error { return cb.Delete().After("gorm:delete").Register(n, fn) }},
		{"row",
			func(n string, fn hook) error { return cb.Row().Before("gorm:row").Register(n, fn) },
			func(n string, fn hook) error { return cb.Row().After("gorm:row").Register(n, fn) }},
		{"raw",
			func(n string, fn hook) error { return cb.Raw().Before("gorm:raw").Register(n, fn) },
			func(n string, fn hook) error { return cb.Raw().After("gorm:raw").Register(n, fn) }},
	}

	for _, r := range register {
		if err := r.before(prefix+":before_"+r.op, before); err != nil {
			return err
		}
		if err := r.after(prefix+":after_"+r.op, after); err != nil {
			return err
		}
	}
	return nil
}
