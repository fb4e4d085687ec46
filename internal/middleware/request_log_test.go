package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestLogAssignsIDAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var seenID string
	handler := RequestLog(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tips", nil))

	if seenID == "" {
		t.Fatalf("expected a request id in context")
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status not forwarded: %d", rec.Code)
	}
	line := buf.String()
	if !strings.Contains(line, seenID) || !strings.Contains(line, "418") {
		t.Fatalf("access log missing fields: %s", line)
	}
}

func TestRequestIDFromContextDefault(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := RequestIDFromContext(r.Context()); got != "" {
		t.Fatalf("expected empty id outside middleware, got %q", got)
	}
}
