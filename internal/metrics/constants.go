package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Security metric names
const (
	MetricNameAuthFailures = "auth_failures_total"
	MetricNameRateLimited  = "rate_limited_requests_total"
)

// Business metric names
const (
	MetricNameEvaluationsTotal    = "artifact_evaluations_total"
	MetricNameEvaluationErrors    = "artifact_evaluation_errors_total"
	MetricNameEvaluationDuration  = "artifact_evaluation_duration_seconds"
	MetricNameOutcomeRows         = "artifact_outcome_rows"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Security metric help text
const (
	HelpTextAuthFailures = "Total number of requests rejected for a missing or invalid API key"
	HelpTextRateLimited  = "Total number of requests rejected by the per-client rate limit"
)

// Business metric help text
const (
	HelpTextEvaluationsTotal   = "Total number of artifact potential evaluations"
	HelpTextEvaluationErrors   = "Total number of failed artifact evaluations"
	HelpTextEvaluationDuration = "Artifact evaluation latency in seconds"
	HelpTextOutcomeRows        = "Number of rows in produced outcome tables"
)

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelSlot   = "slot"
	LabelSource = "source"
	LabelReason = "reason"
)

// HTTPLatencyBuckets are the histogram buckets for HTTP request duration
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// EvaluationLatencyBuckets are the histogram buckets for evaluation duration
var EvaluationLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}

// OutcomeRowBuckets are the histogram buckets for outcome table sizes
var OutcomeRowBuckets = []float64{1, 10, 100, 1000, 10000, 100000}
