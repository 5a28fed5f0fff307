// Package middleware provides HTTP middleware for the inbound request pipeline.
//
// The middleware chain processes requests in this order:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging → RateLimit → Timeout → Handler
//
// Each middleware is a func(http.Handler) http.Handler and can be composed
// using the Chain helper.
package middleware

import "net/http"

// statusRecorder remembers the status and body size a handler produced so
// Recovery, OpenTelemetry and Logging can report them after the fact.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	size    int64
	started bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// Status is the first status code written, or 200 if the handler only wrote
// a body or wrote nothing.
func (sr *statusRecorder) Status() int { return sr.status }

// Size is the number of body bytes accepted by the underlying writer.
func (sr *statusRecorder) Size() int64 { return sr.size }

// Started reports whether the response is committed.
func (sr *statusRecorder) Started() bool { return sr.started }

// WriteHeader forwards only the first call.
func (sr *statusRecorder) WriteHeader(code int) {
	if sr.started {
		return
	}
	sr.status = code
	sr.started = true
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	sr.started = true
	n, err := sr.ResponseWriter.Write(b)
	sr.size += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}
