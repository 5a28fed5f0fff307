package dto

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
)

// Fixed client-facing messages for non-validation failures.
const (
	MsgInvalidRequestBody = "Invalid Request Body"
	MsgNotFound           = "Todo Not Found"
	MsgConflict           = "Todo Already Exists"
	MsgUnavailable        = "Service Unavailable"
	MsgInternal           = "Internal Server Error"
)

// ErrInvalidRequestBody reports a body that is not valid JSON for the target
// request type.
var ErrInvalidRequestBody = domain.NewValidationError("body", MsgInvalidRequestBody)

// ErrorStatus maps err to its HTTP status code and plain-text body. Validation
// errors carry their own message; everything unrecognized becomes a 500 that
// does not leak the error text.
func ErrorStatus(err error) (int, string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, MsgNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, MsgConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, MsgUnavailable
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

// WriteErrorResponse writes err as a plain-text response. Server-side failures
// are logged with the request-scoped logger.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := ErrorStatus(err)

	if status >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}

	WriteText(w, status, msg)
}

// WriteText writes msg as a text/plain body with the given status code.
func WriteText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
