// Package metrics exposes Prometheus instrumentation for the workbench.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the workbench counters. A fresh registry per instance keeps
// tests independent of global state.
type Metrics struct {
	registry *prometheus.Registry

	ValidationsTotal  *prometheus.CounterVec
	ShortLinkHits     prometheus.Counter
	ShortLinkRewrites prometheus.Counter
	EventsTotal       *prometheus.CounterVec
}

// New creates and registers the workbench metrics.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.ValidationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "otelview",
		Name:      "validations_total",
		Help:      "Validation runs by outcome.",
	}, []string{"outcome"})

	m.ShortLinkHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "otelview",
		Name:      "shortlink_hits_total",
		Help:      "Short link resolutions.",
	})

	m.ShortLinkRewrites = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "otelview",
		Name:      "shortlink_bot_rewrites_total",
		Help:      "Short link requests rewritten to the crawler preview.",
	})

	m.EventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "otelview",
		Name:      "events_total",
		Help:      "Analytics events fired.",
	}, []string{"name"})

	m.registry.MustRegister(
		m.ValidationsTotal,
		m.ShortLinkHits,
		m.ShortLinkRewrites,
		m.EventsTotal,
	)
	return m
}

// ObserveValidation records one validation run.
func (m *Metrics) ObserveValidation(valid bool) {
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	m.ValidationsTotal.WithLabelValues(outcome).Inc()
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
