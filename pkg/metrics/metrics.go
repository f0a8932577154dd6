package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MQ consumption latency (ms)
	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	// Extraction endpoint latency (ms)
	ExtractionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "extraction_call_latency_ms",
			Help:    "AI extraction endpoint call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"status"},
	)

	// HTTP request latency (s)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Triaged emails by routed queue
	EmailTriagedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_triaged_count",
			Help: "Total number of emails triaged",
		},
		[]string{"queue_type"}, // quick_approval, detailed_review, rejected
	)

	// Field validation failures
	ValidationFailureCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_failure_count",
			Help: "Total number of field validation failures",
		},
		[]string{"field"}, // sap_id, contact_name, contact_email, contact_phone
	)

	// Reviewer actions
	ReviewActionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_action_count",
			Help: "Total number of reviewer actions",
		},
		[]string{"action"}, // confirmed, followup_sent
	)
)

// RecordMQConsumeLatency records MQ consume latency.
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

// RecordExtractionLatency records an extraction endpoint call.
func RecordExtractionLatency(status string, duration time.Duration) {
	ExtractionLatency.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementEmailTriaged counts one triaged email per routed queue.
func IncrementEmailTriaged(queueType string) {
	EmailTriagedCount.WithLabelValues(queueType).Inc()
}

// IncrementValidationFailure counts a field validation failure.
func IncrementValidationFailure(field string) {
	ValidationFailureCount.WithLabelValues(field).Inc()
}

// IncrementReviewAction counts a reviewer action.
func IncrementReviewAction(action string) {
	ReviewActionCount.WithLabelValues(action).Inc()
}
