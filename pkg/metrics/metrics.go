// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ResolutionsTotal tracks chat resolutions by strategy and topic.
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_resolutions_total",
			Help: "Total chat resolutions",
		},
		[]string{"strategy", "topic"},
	)

	// RemoteCompletionDuration tracks remote completion latency.
	RemoteCompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_remote_completion_duration_seconds",
			Help:    "Remote completion request duration",
			Buckets: []float64{.1, .25, .5, 1, 2, 5, 10, 20},
		},
		[]string{"provider", "status"},
	)

	// RemoteFallbacksTotal tracks remote provider failures that fell back locally.
	RemoteFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_remote_fallbacks_total",
			Help: "Remote completion failures recovered by the local engine",
		},
		[]string{"provider"},
	)

	// MessagesTotal tracks conversation messages by role.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total conversation messages appended",
		},
		[]string{"sender"},
	)

	// RateLimitRejectionsTotal tracks submissions rejected by the conversation rate limiter.
	RateLimitRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_rate_limit_rejections_total",
			Help: "Submissions rejected by the conversation rate limiter",
		},
	)

	// ConversationsActive tracks conversations currently held in memory.
	ConversationsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_conversations_active",
			Help: "Conversations currently held in memory",
		},
	)

	// ContactSubmissionsTotal tracks contact form submissions by outcome.
	ContactSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total contact form submissions",
		},
		[]string{"outcome"},
	)

	// ProjectFetchesTotal tracks project listing fetches by source.
	ProjectFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_fetches_total",
			Help: "Project listing fetches by source",
		},
		[]string{"source"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordResolution records a chat resolution.
func RecordResolution(strategy, topic string) {
	ResolutionsTotal.WithLabelValues(strategy, topic).Inc()
}

// RecordRemoteCompletion records a remote completion attempt.
func RecordRemoteCompletion(provider, status string, duration float64) {
	RemoteCompletionDuration.WithLabelValues(provider, status).Observe(duration)
}
