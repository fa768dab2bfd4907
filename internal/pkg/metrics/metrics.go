// Package metrics exposes Prometheus collectors for the swap lifecycle and the points flow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rewear"

// Metrics owns a private registry so that tests can create independent instances.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	registry          *prometheus.Registry
	swapsCreated      *prometheus.CounterVec
	swapTransitions   *prometheus.CounterVec
	pointsTransferred prometheus.Counter
	itemsModerated    *prometheus.CounterVec
	itemsListed       prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		swapsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swaps_created_total",
			Help:      "Swap requests created, by swap type.",
		}, []string{"type"}),
		swapTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swap_transitions_total",
			Help:      "Swap status transitions applied, by target status.",
		}, []string{"status"}),
		pointsTransferred: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_transferred_total",
			Help:      "Points moved between users by completed swaps.",
		}),
		itemsModerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_moderated_total",
			Help:      "Moderation decisions, by decision.",
		}, []string{"decision"}),
		itemsListed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_listed_total",
			Help:      "Listings submitted for moderation.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.swapsCreated,
		m.swapTransitions,
		m.pointsTransferred,
		m.itemsModerated,
		m.itemsListed,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) SwapCreated(swapType string) {
	if m == nil {
		return
	}
	m.swapsCreated.WithLabelValues(swapType).Inc()
}

func (m *Metrics) SwapTransitioned(status string) {
	if m == nil {
		return
	}
	m.swapTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) PointsTransferred(amount int) {
	if m == nil || amount <= 0 {
		return
	}
	m.pointsTransferred.Add(float64(amount))
}

func (m *Metrics) ItemModerated(decision string) {
	if m == nil {
		return
	}
	m.itemsModerated.WithLabelValues(decision).Inc()
}

func (m *Metrics) ItemListed() {
	if m == nil {
		return
	}
	m.itemsListed.Inc()
}
