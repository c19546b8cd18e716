package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thumbforge",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "thumbforge",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"method", "endpoint"},
	)

	// Generation counters by backend variant and outcome
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thumbforge",
			Subsystem: "generation",
			Name:      "total",
			Help:      "Total thumbnail generation attempts",
		},
		[]string{"backend", "status"},
	)

	// Generation duration histogram
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "thumbforge",
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "End to end thumbnail generation duration in seconds",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120, 180},
		},
		[]string{"backend"},
	)

	// Remaining free credits gauge
	FreeCreditsRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "thumbforge",
			Subsystem: "credits",
			Name:      "remaining",
			Help:      "Free generation credits remaining",
		},
	)
)

// RecordRequest records HTTP request metrics.
func RecordRequest(method, endpoint, status string, duration float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordGeneration records a generation attempt outcome.
func RecordGeneration(backend, status string, duration float64) {
	GenerationsTotal.WithLabelValues(backend, status).Inc()
	GenerationDuration.WithLabelValues(backend).Observe(duration)
}
