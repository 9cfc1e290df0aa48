// Package metrics exposes the service's Prometheus instrumentation: the
// generic HTTP request metrics the middleware package records against,
// plus counters for the domain events the rest of the spec cares about
// (submissions, chat messages, expiry sweeps, proof-of-work outcomes).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics owns a dedicated registry (rather than the global default) so
// multiple instances never collide in tests.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal     *prometheus.CounterVec
	httpRequestDuration    *prometheus.HistogramVec
	httpRequestsInFlight  prometheus.Gauge

	submissionsTotal   *prometheus.CounterVec
	chatMessagesTotal  prometheus.Counter
	powAttemptsTotal   *prometheus.CounterVec
	schedulerSweeps    prometheus.Counter
	schedulerDestroyed prometheus.Counter
}

// New builds a Metrics instance registered against a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vaultchat_http_requests_total",
			Help: "Total HTTP requests processed, by method/path/status.",
		}, []string{"method", "path", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vaultchat_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),

		httpRequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vaultchat_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		}),

		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vaultchat_submissions_total",
			Help: "Anonymous submissions processed, by outcome.",
		}, []string{"outcome"}),

		chatMessagesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vaultchat_chat_messages_total",
			Help: "Chat messages accepted.",
		}),

		powAttemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vaultchat_pow_attempts_total",
			Help: "Proof-of-work verifications, by outcome.",
		}, []string{"outcome"}),

		schedulerSweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vaultchat_scheduler_sweeps_total",
			Help: "Expiry sweep cycles run.",
		}),

		schedulerDestroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vaultchat_scheduler_records_destroyed_total",
			Help: "Records whose key material was destroyed by the sweeper.",
		}),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpRequestsInFlight,
		m.submissionsTotal,
		m.chatMessagesTotal,
		m.powAttemptsTotal,
		m.schedulerSweeps,
		m.schedulerDestroyed,
	)

	return m
}

// GetRegistry returns the registry this instance serves its metrics from.
func (m *Metrics) GetRegistry() *prometheus.Registry {
	return m.registry
}

// IncrementHTTPRequestsInFlight marks the start of an in-flight request.
func (m *Metrics) IncrementHTTPRequestsInFlight() {
	m.httpRequestsInFlight.Inc()
}

// DecrementHTTPRequestsInFlight marks the end of an in-flight request.
func (m *Metrics) DecrementHTTPRequestsInFlight() {
	m.httpRequestsInFlight.Dec()
}

// RecordHTTPRequest records the outcome and latency of one HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	label := statusLabel(status)
	m.httpRequestsTotal.WithLabelValues(method, path, label).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, label).Observe(duration.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// RecordSubmission records an anonymous submission outcome: "accepted",
// "bad_request", or "duplicate_commitment".
func (m *Metrics) RecordSubmission(outcome string) {
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

// RecordChatMessage records one accepted chat message.
func (m *Metrics) RecordChatMessage() {
	m.chatMessagesTotal.Inc()
}

// RecordPoW records a proof-of-work verification outcome: "accepted" or
// "rejected".
func (m *Metrics) RecordPoW(outcome string) {
	m.powAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordSweep records one expiry sweep cycle and how many records it
// destroyed.
func (m *Metrics) RecordSweep(destroyed int) {
	m.schedulerSweeps.Inc()
	if destroyed > 0 {
		m.schedulerDestroyed.Add(float64(destroyed))
	}
}
