package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ekaya-inc/ekaya-bi/pkg/audit"
	"github.com/ekaya-inc/ekaya-bi/pkg/metrics"
)

func TestRequestLogger_LogsRequests(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/results/{id}/export", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := RequestLogger(logger)(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/results/abc/export", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}

	entry := logs.All()[0]
	if entry.Message != "HTTP request" {
		t.Errorf("expected message 'HTTP request', got '%s'", entry.Message)
	}
	fields := entry.ContextMap()
	if fields["route"] != "GET /api/results/{id}/export" {
		t.Errorf("expected route pattern, got %v", fields["route"])
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("expected status 418, got %v", fields["status"])
	}
}

func TestRequestLogger_RecordsDuration(t *testing.T) {
	handler := RequestLogger(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	before := testutil.CollectAndCount(metrics.HTTPRequestDuration)

	req := httptest.NewRequest(http.MethodPost, "/nowhere-"+t.Name(), nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.CollectAndCount(metrics.HTTPRequestDuration)
	if after < before || after == 0 {
		t.Errorf("expected a duration series to be recorded, before=%d after=%d", before, after)
	}
}

func TestRequestLogger_NilLogger_PassesThrough(t *testing.T) {
	called := false
	handler := RequestLogger(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected handler to be called")
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	_, _ = rw.Write([]byte("body"))
	rw.WriteHeader(http.StatusInternalServerError)

	if rw.statusCode != http.StatusOK {
		t.Errorf("expected 200 after implicit header write, got %d", rw.statusCode)
	}
}

func TestClientIP(t *testing.T) {
	var got string
	handler := ClientIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = audit.ClientIPFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "203.0.113.7" {
		t.Errorf("expected client ip 203.0.113.7, got %q", got)
	}
}
