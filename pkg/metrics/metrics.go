// Package metrics exposes Prometheus collectors for the question pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ekaya_bi_questions_total",
			Help: "Questions answered, by classified intent and translator",
		},
		[]string{"intent", "translator"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ekaya_bi_query_duration_seconds",
			Help:    "Time spent executing generated queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dialect"},
	)

	QueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ekaya_bi_query_failures_total",
			Help: "Queries rejected by the data store",
		},
		[]string{"dialect"},
	)

	EmptyResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ekaya_bi_empty_results_total",
			Help: "Questions whose query returned no rows",
		},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ekaya_bi_exports_total",
			Help: "Result exports, by requested format",
		},
		[]string{"format"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ekaya_bi_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
