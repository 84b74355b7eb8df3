package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Security Metrics
var (
	AuthFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAuthFailures,
			Help: HelpTextAuthFailures,
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRateLimited,
			Help: HelpTextRateLimited,
		},
	)
)

// Business Metrics
var (
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEvaluationsTotal,
			Help: HelpTextEvaluationsTotal,
		},
		[]string{LabelSlot, LabelSource},
	)

	EvaluationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEvaluationErrors,
			Help: HelpTextEvaluationErrors,
		},
		[]string{LabelReason},
	)

	EvaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameEvaluationDuration,
			Help:    HelpTextEvaluationDuration,
			Buckets: EvaluationLatencyBuckets,
		},
	)

	OutcomeRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameOutcomeRows,
			Help:    HelpTextOutcomeRows,
			Buckets: OutcomeRowBuckets,
		},
	)
)
