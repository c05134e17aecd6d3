package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// APIMetrics records calls made to the upstream products API.
type APIMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New registers the collectors on reg. Passing nil yields a recorder that drops everything.
func New(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		return nil
	}
	f := promauto.With(reg)
	return &APIMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "product_console",
			Name:      "api_requests_total",
			Help:      "Requests sent to the products API by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "product_console",
			Name:      "api_request_duration_seconds",
			Help:      "Latency of requests sent to the products API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *APIMetrics) Observe(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
