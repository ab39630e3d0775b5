package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the server's Prometheus collectors on a private registry so
// multiple servers (e.g. in tests) never collide on registration.
type metrics struct {
	registry         *prometheus.Registry
	recommendTotal   *prometheus.CounterVec
	recommendSeconds prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		recommendTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "osusume_recommend_requests_total",
			Help: "Recommendation requests by outcome.",
		}, []string{"status"}),
		recommendSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "osusume_recommend_duration_seconds",
			Help:    "Recommendation request latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.recommendTotal, m.recommendSeconds)
	return m
}
