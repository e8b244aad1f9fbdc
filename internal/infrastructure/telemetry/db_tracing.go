package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// DBTracingConfig controls SQL span creation.
type DBTracingConfig struct {
	Enabled         bool
	DBSystem        string        // "postgresql" or "sqlite"
	WithVariables   bool          // keep bound values in db.statement; never in production
	SlowQueryThresh time.Duration // spans above it get db.slow_query=true
}

// DefaultDBTracingConfig returns a disabled PostgreSQL configuration.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		DBSystem:        "postgresql",
		SlowQueryThresh: 200 * time.Millisecond,
	}
}

type queryStartKey struct{}

// RegisterDBTracing installs the otelgorm plugin on db and tags slow statements.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.WithVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) {
		annotateStatement(tx, cfg.SlowQueryThresh)
	}

	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("fstore:timing_before_create", before),
		cb.Query().Before("gorm:query").Register("fstore:timing_before_query", before),
		cb.Update().Before("gorm:update").Register("fstore:timing_before_update", before),
		cb.Delete().Before("gorm:delete").Register("fstore:timing_before_delete", before),
		cb.Create().After("gorm:create").Register("fstore:timing_after_create", after),
		cb.Query().After("gorm:query").Register("fstore:timing_after_query", after),
		cb.Update().After("gorm:update").Register("fstore:timing_after_update", after),
		cb.Delete().After("gorm:delete").Register("fstore:timing_after_delete", after),
	)
}

func annotateStatement(tx *gorm.DB, slowThreshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok || slowThreshold <= 0 {
		return
	}
	if elapsed := time.Since(start); elapsed > slowThreshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}
