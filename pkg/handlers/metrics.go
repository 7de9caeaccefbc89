package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterMetricsRoute exposes the Prometheus collectors at GET /metrics.
func RegisterMetricsRoute(mux *http.ServeMux) {
	mux.Handle("GET /metrics", promhttp.Handler())
}
