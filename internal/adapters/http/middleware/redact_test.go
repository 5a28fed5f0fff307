package middleware_test

import (
	"net/http"
	"testing"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/middleware"
)

func TestRedactHeaders(t *testing.T) {
	t.Parallel()

	headers := http.Header{
		"Authorization":       {"Bearer s3cret"},
		"Proxy-Authorization": {"Basic dXNlcjpwYXNz"},
		"Cookie":              {"session=abc123"},
		"X-Api-Key":           {"key-1"},
		"Content-Type":        {"application/json"},
		"Accept":              {"application/json", "text/plain"},
		"X-Request-Id":        {"req-7"},
	}

	got := map[string]string{}
	for _, a := range middleware.RedactHeaders(headers) {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"Authorization":       "[REDACTED]",
		"Proxy-Authorization": "[REDACTED]",
		"Cookie":              "[REDACTED]",
		"X-Api-Key":           "[REDACTED]",
		"Content-Type":        "application/json",
		"Accept":              "application/json,text/plain",
		"X-Request-Id":        "req-7",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d attrs, want %d: %v", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestRedactHeaders_NonCanonicalKey(t *testing.T) {
	t.Parallel()

	// Headers built by hand skip canonicalization.
	attrs := middleware.RedactHeaders(http.Header{"authorization": {"Bearer s3cret"}})
	if len(attrs) != 1 || attrs[0].Value.String() != "[REDACTED]" {
		t.Errorf("attrs = %v, want one redacted value", attrs)
	}
}
