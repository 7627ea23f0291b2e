package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggingMiddlewareLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusNotFound, "warn"},
		{http.StatusServiceUnavailable, "error"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		mw := NewLoggingMiddleware(zerolog.New(&buf))

		rec := httptest.NewRecorder()
		mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte("hello"))
		})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/items", nil))

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("failed to decode log entry: %v", err)
		}
		if entry["level"] != tt.level {
			t.Fatalf("status %d: expected level %s, got %v", tt.status, tt.level, entry["level"])
		}
		if entry["status"] != float64(tt.status) || entry["bytes"] != float64(5) {
			t.Fatalf("unexpected log entry: %v", entry)
		}
		if entry["path"] != "/api/v1/items" || entry["route"] != "/api/v1/items" {
			t.Fatalf("expected path and route to be logged, got %v", entry)
		}
	}
}

func TestRecoveryReturnsJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON error, got %s", ct)
	}
}

func TestRecoveryPassesAbortThrough(t *testing.T) {
	defer func() {
		if p := recover(); p != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler to propagate, got %v", p)
		}
	}()

	Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
