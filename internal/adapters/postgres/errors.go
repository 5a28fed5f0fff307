package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/todo-service/internal/domain"
)

// uniqueViolation is the SQLSTATE for a duplicate key.
const uniqueViolation pq.ErrorCode = "23505"

// isHealthyOutcome reports whether err says nothing about database health.
// Missing rows, duplicate keys and caller cancellation do not count against
// the circuit breaker.
func isHealthyOutcome(err error) bool {
	return err == nil ||
		errors.Is(err, sql.ErrNoRows) ||
		isUniqueViolation(err) ||
		errors.Is(err, context.Canceled)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// translate maps driver and breaker errors to domain sentinels, keeping the
// original error in the chain.
func translate(operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("postgres %s: %w: %w", operation, domain.ErrUnavailable, err)
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("postgres %s: %w", operation, domain.ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("postgres %s: %w: %w", operation, domain.ErrConflict, err)
	default:
		return fmt.Errorf("postgres %s: %w", operation, err)
	}
}
