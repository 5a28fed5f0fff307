package middleware_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
)

const todoBody = `{"id":7,"todo":"Buy milk","priority":"HIGH","status":"TO DO","category":"HOME","dueDate":"2024-03-05"}`

// todoRouter mounts the logging middleware the way the service router does,
// so the completion log sees chi's matched route.
func todoRouter(logger *slog.Logger, mws ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	for _, mw := range mws {
		r.Use(mw)
	}
	r.Use(middleware.Logging(logger))
	r.Get("/todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).InfoContext(r.Context(), "todo fetched",
			slog.String("id", chi.URLParam(r, "id")))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(todoBody))
	})
	r.Delete("/todos/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	return r
}

// logRecords decodes JSON log lines keyed by message.
func logRecords(t *testing.T, buf *bytes.Buffer) map[string]map[string]any {
	t.Helper()

	records := make(map[string]map[string]any)
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("log line is not JSON: %q: %v", sc.Text(), err)
		}
		msg, _ := rec["msg"].(string)
		records[msg] = rec
	}
	return records
}

func jsonLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level}))
}

func TestLogging_CompletionCarriesRouteAndBytes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	router := todoRouter(jsonLogger(&buf, slog.LevelInfo))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos/7", http.NoBody))

	done, ok := logRecords(t, &buf)["request completed"]
	if !ok {
		t.Fatalf("no completion record in %s", buf.String())
	}
	if got := done["route"]; got != "/todos/{id}" {
		t.Errorf("route = %v, want %q", got, "/todos/{id}")
	}
	if got := done["path"]; got != "/todos/7" {
		t.Errorf("path = %v, want %q", got, "/todos/7")
	}
	if got := done["method"]; got != http.MethodGet {
		t.Errorf("method = %v, want GET", got)
	}
	if got := done["status"]; got != float64(http.StatusOK) {
		t.Errorf("status = %v, want 200", got)
	}
	if got := done["bytes"]; got != float64(len(todoBody)) {
		t.Errorf("bytes = %v, want %d", got, len(todoBody))
	}
	if _, ok := done["duration"]; !ok {
		t.Error("completion record missing duration")
	}
}

func TestLogging_HeaderOnlyResponse(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	router := todoRouter(jsonLogger(&buf, slog.LevelInfo))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/todos/999", http.NoBody))

	done := logRecords(t, &buf)["request completed"]
	if got := done["status"]; got != float64(http.StatusNotFound) {
		t.Errorf("status = %v, want 404", got)
	}
	if got := done["bytes"]; got != float64(0) {
		t.Errorf("bytes = %v, want 0", got)
	}
	if got := done["route"]; got != "/todos/{id}" {
		t.Errorf("route = %v, want %q", got, "/todos/{id}")
	}
}

func TestLogging_UnmatchedPathHasEmptyRoute(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	router := todoRouter(jsonLogger(&buf, slog.LevelInfo))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agenda/today", http.NoBody))

	done := logRecords(t, &buf)["request completed"]
	if got := done["status"]; got != float64(http.StatusNotFound) {
		t.Errorf("status = %v, want 404", got)
	}
	if got := done["route"]; got != "" {
		t.Errorf("route = %v, want empty for an unmatched path", got)
	}
}

func TestLogging_HandlerLogsShareRequestIDs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	router := todoRouter(jsonLogger(&buf, slog.LevelInfo), middleware.RequestID(), middleware.CorrelationID())

	req := httptest.NewRequest(http.MethodGet, "/todos/7", http.NoBody)
	req.Header.Set("X-Request-ID", "req-7")
	req.Header.Set("X-Correlation-ID", "checkout-42")
	router.ServeHTTP(httptest.NewRecorder(), req)

	records := logRecords(t, &buf)
	for _, msg := range []string{"request started", "todo fetched", "request completed"} {
		rec, ok := records[msg]
		if !ok {
			t.Errorf("missing %q record", msg)
			continue
		}
		if rec["request_id"] != "req-7" {
			t.Errorf("%q request_id = %v, want req-7", msg, rec["request_id"])
		}
		if rec["correlation_id"] != "checkout-42" {
			t.Errorf("%q correlation_id = %v, want checkout-42", msg, rec["correlation_id"])
		}
	}
	if got := records["todo fetched"]["id"]; got != "7" {
		t.Errorf("handler record id = %v, want 7", got)
	}
}

func TestLogging_DebugHeadersAreRedacted(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	router := todoRouter(jsonLogger(&buf, slog.LevelDebug))

	req := httptest.NewRequest(http.MethodGet, "/todos/7", http.NoBody)
	req.Header.Set("Authorization", "Bearer s3cret")
	req.Header.Set("Accept", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)

	headers, ok := logRecords(t, &buf)["request headers"]
	if !ok {
		t.Fatal("no request headers record at debug level")
	}
	if headers["Authorization"] != "[REDACTED]" {
		t.Errorf("Authorization = %v, want [REDACTED]", headers["Authorization"])
	}
	if headers["Accept"] != "application/json" {
		t.Errorf("Accept = %v, want application/json", headers["Accept"])
	}
}

func TestLogging_NoHeaderRecordAtInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	router := todoRouter(jsonLogger(&buf, slog.LevelInfo))

	req := httptest.NewRequest(http.MethodGet, "/todos/7", http.NoBody)
	req.Header.Set("Authorization", "Bearer s3cret")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if bytes.Contains(buf.Bytes(), []byte("s3cret")) {
		t.Error("credential leaked into logs")
	}
	if _, ok := logRecords(t, &buf)["request headers"]; ok {
		t.Error("request headers logged at info level")
	}
}
