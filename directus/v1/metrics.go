package v1

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects transport and token refresh counters. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	refreshes *prometheus.CounterVec
}

// NewMetrics registers the client collectors on reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bosted",
			Subsystem: "directus",
			Name:      "requests_total",
			Help:      "Requests sent to the Directus backend by method and status.",
		}, []string{"method", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bosted",
			Subsystem: "directus",
			Name:      "request_duration_seconds",
			Help:      "Round trip time of Directus requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bosted",
			Subsystem: "directus",
			Name:      "token_refresh_total",
			Help:      "Access token refresh attempts by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) observeRequest(method string, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, status).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) observeRefresh(result string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(result).Inc()
}
