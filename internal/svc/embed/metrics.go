// If you are AI: This file defines the Prometheus metrics for rendering requests.

package embed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes used as the outcome label.
const (
	OutcomeOK            = "ok"
	OutcomeCached        = "cached"
	OutcomeNotFound      = "not_found"
	OutcomeBadRequest    = "bad_request"
	OutcomeTooLarge      = "too_large"
	OutcomeUnprocessable = "unprocessable"
)

// Metrics groups the collectors shared by the HTTP and websocket services.
type Metrics struct {
	Requests  *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
	Documents prometheus.Gauge
	CacheHits prometheus.Counter
}

// NewMetrics registers the collectors with registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	return &Metrics{
		Requests: promauto.With(registerer).NewCounterVec(prometheus.CounterOpts{
			Namespace: "scriptvar",
			Name:      "serialize_requests_total",
			Help:      "The total number of rendering requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		Duration: promauto.With(registerer).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scriptvar",
			Name:      "serialize_duration_seconds",
			Help:      "Time spent decoding and rendering a request.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"endpoint"}),
		Documents: promauto.With(registerer).NewGauge(prometheus.GaugeOpts{
			Namespace: "scriptvar",
			Name:      "documents_loaded",
			Help:      "The number of documents in the registry.",
		}),
		CacheHits: promauto.With(registerer).NewCounter(prometheus.CounterOpts{
			Namespace: "scriptvar",
			Name:      "cache_hits_total",
			Help:      "The total number of requests answered from the render cache.",
		}),
	}
}

// observe records one finished request.
func (m *Metrics) observe(endpoint, outcome string, seconds float64) {
	m.Requests.WithLabelValues(endpoint, outcome).Inc()
	m.Duration.WithLabelValues(endpoint).Observe(seconds)
}
