package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/todo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
)

// Chain composes middleware into one. The first argument is the outermost:
//
//	Chain(Recovery, RequestID, Logging)(handler)
//
// is equivalent to
//
//	Recovery(RequestID(Logging(handler)))
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}

// StackConfig carries what the standard stack needs. Metrics may be nil.
type StackConfig struct {
	Logger         *slog.Logger
	Metrics        *telemetry.Metrics
	RateLimit      config.RateLimitConfig
	RequestTimeout time.Duration
}

// Stack returns the middleware every todo-service route runs behind:
//
//	Recovery → RequestID → CorrelationID → OTEL → Logging → RateLimit → Timeout
//
// Recovery is outermost so a panic anywhere below still yields a 500.
// The rate limiter sits inside Logging so rejected requests are logged.
func Stack(cfg StackConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return Chain(
		Recovery(logger),
		RequestID(),
		CorrelationID(),
		OpenTelemetry(cfg.Metrics),
		Logging(logger),
		RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize),
		Timeout(cfg.RequestTimeout),
	)
}
