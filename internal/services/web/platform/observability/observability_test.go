package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerLogsMethodAndPath(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	h := RequestLogger(zap.New(core).Sugar())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/organizations/acme/teams/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["method"] != "GET" {
		t.Fatalf("method = %v, want GET", fields["method"])
	}
	if fields["path"] != "/organizations/acme/teams/" {
		t.Fatalf("path = %v", fields["path"])
	}
	if fields["status"] != int64(http.StatusNoContent) {
		t.Fatalf("status = %v, want 204", fields["status"])
	}
	if fields["request_id"] != "req-123" {
		t.Fatalf("request_id = %v, want req-123", fields["request_id"])
	}
}

func TestRequestLoggerCapturesImplicitStatusOKAndBytes(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	h := RequestLogger(zap.New(core).Sugar())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	fields := logs.All()[0].ContextMap()
	if fields["status"] != int64(http.StatusOK) {
		t.Fatalf("status = %v, want 200", fields["status"])
	}
	if fields["bytes"] != int64(2) {
		t.Fatalf("bytes = %v, want 2", fields["bytes"])
	}
	if _, ok := fields["latency"]; !ok {
		t.Fatal("expected latency field")
	}
	if fields["request_id"] != "-" {
		t.Fatalf("request_id = %v, want -", fields["request_id"])
	}
}
