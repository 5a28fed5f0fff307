package postgres

import (
	"context"
	crand "crypto/rand"
	"database/sql/driver"
	"encoding/binary"
	"errors"
	"log/slog"
	"math"
	"net"
	"time"

	"github.com/lib/pq"
	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/todo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
)

// jitterFraction is the maximum jitter as a fraction of the delay (±25%).
const jitterFraction = 0.25

// noRetry runs every statement exactly once.
var noRetry = config.RetryConfig{MaxAttempts: 1}

// runRead is run with exponential backoff for statements that do not change
// data. Only connection-level failures are retried; a missing row, an open
// breaker or a cancelled context returns immediately.
func (d *DB) runRead(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	attempts := max(d.retry.MaxAttempts, 1)

	var err error
	for attempt := range attempts {
		if attempt > 0 {
			if werr := d.waitForRetry(ctx, operation, attempt, err); werr != nil {
				return werr
			}
		}

		err = d.run(ctx, operation, fn)
		if !isRetryable(err) {
			return err
		}
	}
	return err
}

func (d *DB) waitForRetry(ctx context.Context, operation string, attempt int, lastErr error) error {
	delay := backoff(attempt, d.retry)

	logging.FromContext(ctx).WarnContext(ctx, "retrying query",
		slog.String("operation", "postgres."+operation),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", d.retry.MaxAttempts),
		slog.Duration("backoff", delay),
		slog.Any("error", lastErr),
	)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// backoff returns the delay before the given retry. attempt is 1-indexed
// (attempt 1 is the first retry).
func backoff(attempt int, cfg config.RetryConfig) time.Duration {
	delay := float64(cfg.InitialInterval) * math.Pow(cfg.Multiplier, float64(attempt-1))

	if cfg.MaxInterval > 0 && delay > float64(cfg.MaxInterval) {
		delay = float64(cfg.MaxInterval)
	}

	jitter := delay * jitterFraction
	delay += jitter * (2*secureRandFloat64() - 1)

	if delay < 0 {
		delay = 0
	}

	return time.Duration(delay)
}

// IEEE 754 double-precision constants for random float generation.
const (
	significandBits = 53
	uint64Bits      = 64
)

// secureRandFloat64 returns a random float64 in [0, 1) using crypto/rand.
func secureRandFloat64() float64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0
	}
	return float64(binary.BigEndian.Uint64(b[:])>>(uint64Bits-significandBits)) / float64(uint64(1)<<significandBits)
}

// isRetryable reports whether err came from a broken connection or a server
// that is restarting. Errors are inspected through the translate wrapping.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// Class 08 is connection exception; 57P01-57P03 cover shutdown and
		// startup of the server.
		switch {
		case pqErr.Code.Class() == "08":
			return true
		case pqErr.Code == "57P01", pqErr.Code == "57P02", pqErr.Code == "57P03":
			return true
		default:
			return false
		}
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
