package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal  prometheus.Counter
	EstimatesTotal prometheus.Counter
	DocumentsTotal *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
}

// NewMetrics registers the collectors on a fresh registry so tests can
// build servers without duplicate-registration panics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		AnalysesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "archcost_analyses_total",
			Help: "Diagram analyses performed.",
		}),
		EstimatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "archcost_estimates_total",
			Help: "Cost estimates calculated.",
		}),
		DocumentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "archcost_documents_total",
			Help: "Documents generated, by type and outcome.",
		}, []string{"type", "status"}),
		RequestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "archcost_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}

	reg.MustRegister(m.AnalysesTotal, m.EstimatesTotal, m.DocumentsTotal, m.RequestSeconds)
	return m
}

// Handler serves the /metrics scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
