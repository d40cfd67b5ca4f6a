// Package metrics exposes library counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrlokans/quotevault/internal/library"
)

// StatsSource reports current library totals.
type StatsSource interface {
	Stats() library.Stats
}

// Metrics owns a private registry so tests and multiple servers in one
// process don't collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	changes *prometheus.CounterVec
	quotes  *prometheus.CounterVec
	exports *prometheus.CounterVec
}

func New(stats StatsSource) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotevault",
			Name:      "library_changes_total",
			Help:      "Committed library mutations by kind.",
		}, []string{"kind"}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotevault",
			Name:      "quotes_changed_total",
			Help:      "Quotes touched by committed mutations, by kind.",
		}, []string{"kind"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotevault",
			Name:      "exports_total",
			Help:      "Library exports by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.changes,
		m.quotes,
		m.exports,
	)

	if stats != nil {
		m.registry.MustRegister(
			gauge("books", "Books currently in the library.", func() float64 { return float64(stats.Stats().Books) }),
			gauge("quotes", "Quotes currently in the library.", func() float64 { return float64(stats.Stats().Quotes) }),
			gauge("favourite_quotes", "Quotes marked as favourite.", func() float64 { return float64(stats.Stats().Favourites) }),
		)
	}
	return m
}

func gauge(name, help string, fn func() float64) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "quotevault",
		Name:      name,
		Help:      help,
	}, fn)
}

// Observe counts one committed change. Pass it to Store.Subscribe.
func (m *Metrics) Observe(c library.Change) {
	kind := string(c.Kind)
	m.changes.WithLabelValues(kind).Inc()
	if n := len(c.QuoteIDs); n > 0 {
		m.quotes.WithLabelValues(kind).Add(float64(n))
	}
}

// ExportFinished records the outcome of one export run.
func (m *Metrics) ExportFinished(err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.exports.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
