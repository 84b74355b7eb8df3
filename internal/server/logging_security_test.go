package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Header logging happens at Debug level, where a misconfigured deployment
// could otherwise leak credentials into aggregated logs.
func TestLoggingMiddleware_RedactsCredentialHeaders(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := loggingMiddleware(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/potential/evaluate", nil)
	req.Header.Set(HeaderAPIKey, "scouter-key-123")
	req.Header.Set(HeaderAuthorization, "Bearer scouter-token")
	req.Header.Set("User-Agent", "artifact-scouter-cli/1.0")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, LogMsgRequestHeaders) {
		t.Fatalf("headers were not logged at debug level: %s", out)
	}
	if strings.Contains(out, "scouter-key-123") {
		t.Errorf("log leaks the API key: %s", out)
	}
	if strings.Contains(out, "Bearer scouter-token") {
		t.Errorf("log leaks the bearer token: %s", out)
	}
	if !strings.Contains(out, RedactedValue) {
		t.Errorf("expected redaction marker in log: %s", out)
	}
	if !strings.Contains(out, "artifact-scouter-cli/1.0") {
		t.Errorf("non-credential header missing from log: %s", out)
	}
}

// Operational routes are probed every few seconds and must stay out of the
// request log.
func TestLoggingMiddleware_SkipsOperationalRoutes(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := loggingMiddleware(okHandler())

	for path := range publicRoutes {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if out := buf.String(); strings.Contains(out, LogMsgRequestStarted) {
		t.Errorf("operational routes were logged: %s", out)
	}
}
