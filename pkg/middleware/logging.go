// Package middleware holds the HTTP middleware shared by every route.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/metrics"
)

// unmatchedRoute labels requests that no mux pattern matched, keeping raw paths out of metric labels.
const unmatchedRoute = "unmatched"

// RequestLogger returns middleware that logs HTTP requests at DEBUG level and records
// their latency by method, route pattern and status.
// Pass nil logger to disable logging; timing is always recorded.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)
			elapsed := time.Since(start)

			route := r.Pattern // set by http.ServeMux once routed
			if route == "" {
				route = unmatchedRoute
			}
			metrics.HTTPRequestDuration.
				WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).
				Observe(elapsed.Seconds())

			if logger == nil {
				return
			}
			logger.Debug("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", route),
				zap.Int("status", wrapped.statusCode),
				zap.Duration("duration", elapsed),
				zap.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}
