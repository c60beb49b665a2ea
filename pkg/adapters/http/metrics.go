package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the conversion counters exposed on /metrics.
type Metrics struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a private registry, so several handlers
// (e.g. in tests) never clash on registration.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hexfsm_conversions_total",
				Help: "Total number of conversion requests by operation and outcome",
			},
			[]string{"op", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hexfsm_conversion_duration_seconds",
				Help:    "Duration of conversion requests by operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
	m.registry.MustRegister(m.conversions, m.duration)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument counts and times requests for op. Status is "ok" below 400,
// "client_error" below 500 and "error" otherwise.
func (m *Metrics) Instrument(op string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next(ww, r)

		m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		m.conversions.WithLabelValues(op, statusLabel(ww.Status())).Inc()
	}
}

func statusLabel(code int) string {
	switch {
	case code == 0 || code < 400:
		return "ok"
	case code < 500:
		return "client_error"
	default:
		return "error"
	}
}
