// Package postgres implements the todo store port on PostgreSQL.
//
// Every statement runs through a circuit breaker, an OpenTelemetry client
// span and the store metrics, in this order:
//
//	Circuit Breaker → OTEL Span → sqlx → lib/pq
//
// Construction:
//
//	db, err := postgres.Open(ctx, &cfg.Database, metrics, logger)
//	repo := postgres.NewTodoRepository(db)
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers the "postgres" driver
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/todo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
)

// driverName is both the database/sql driver and the health check name.
const driverName = "postgres"

//go:embed schema.sql
var schema string

// DB is the process-wide store handle. It is opened once at startup and
// shared by every request.
type DB struct {
	conn    *sqlx.DB
	breaker *gobreaker.CircuitBreaker[struct{}]
	retry   config.RetryConfig
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// Open connects to PostgreSQL using cfg.DSN, applies the pool limits and
// verifies the connection within cfg.ConnectTimeout.
func Open(ctx context.Context, cfg *config.DatabaseConfig, metrics *telemetry.Metrics, logger *slog.Logger) (*DB, error) {
	connectCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	conn, err := sqlx.ConnectContext(connectCtx, driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db := New(conn, &cfg.CircuitBreaker, metrics, logger)
	db.retry = cfg.Retry
	return db, nil
}

// New wraps an existing connection. Read queries are not retried. If metrics
// is nil, metric recording is skipped; a nil logger discards output.
func New(conn *sqlx.DB, cfg *config.CircuitBreakerConfig, metrics *telemetry.Metrics, logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        driverName,
		MaxRequests: toUint32(cfg.HalfOpenLimit),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.MaxFailures
		},
		IsSuccessful: isHealthyOutcome,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &DB{
		conn:    conn,
		breaker: cb,
		retry:   noRetry,
		metrics: metrics,
		logger:  logger,
	}
}

// Migrate creates the todo table if it does not exist.
func (d *DB) Migrate(ctx context.Context) error {
	err := d.run(ctx, "migrate", func(ctx context.Context) error {
		_, err := d.conn.ExecContext(ctx, schema)
		return err
	})
	if err != nil {
		return err
	}
	d.logger.InfoContext(ctx, "schema applied", slog.String("table", todoTable))
	return nil
}

// Close releases the connection pool.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Name returns the health check identifier. Together with HealthCheck it
// satisfies ports.HealthChecker.
func (d *DB) Name() string {
	return driverName
}

// HealthCheck pings the database and reports the circuit breaker state.
// A half-open breaker is reported as degraded, an open one as failing.
func (d *DB) HealthCheck(ctx context.Context) error {
	switch state := d.breaker.State(); state {
	case gobreaker.StateClosed:
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", driverName)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", driverName)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", driverName, state)
	}

	if err := d.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: ping: %w", driverName, err)
	}
	return nil
}

// run executes fn inside the circuit breaker and a client span, records the
// store metrics and translates the outcome into domain errors.
func (d *DB) run(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	start := time.Now()

	_, err := d.breaker.Execute(func() (struct{}, error) {
		spanCtx, span := d.startSpan(ctx, operation)
		defer span.End()

		err := fn(spanCtx)
		if err != nil && !isHealthyOutcome(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return struct{}{}, err
	})

	d.recordMetrics(ctx, operation, start, err)

	return translate(operation, err)
}

func (d *DB) startSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(driverName)
	return tracer.Start(ctx, driverName+" "+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", operation),
			attribute.String("db.sql.table", todoTable),
		),
	)
}

// recordMetrics is recorded outside the breaker so that rejected calls are
// counted. Safe to call with nil metrics.
func (d *DB) recordMetrics(ctx context.Context, operation string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}

	result := "success"
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		result = "circuit_open"
	case errors.Is(err, sql.ErrNoRows):
		result = "not_found"
	case err != nil:
		result = "error"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrDBSystem.String("postgresql"),
		telemetry.AttrDBOperation.String(operation),
		telemetry.AttrResult.String(result),
	)

	d.metrics.StoreQueryDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	d.metrics.StoreQueryTotal.Add(ctx, 1, attrs)
}

// toUint32 clamps v into the uint32 range. Negative values become zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
