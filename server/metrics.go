package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server's Prometheus counters. Each server instance owns
// its registry, nothing registers on the global one.
type Metrics struct {
	registry *prometheus.Registry

	dashboardRemote   prometheus.Counter
	dashboardFallback prometheus.Counter
	updateRuns        prometheus.Counter
	updateFailures    prometheus.Counter
}

// NewMetrics creates registered counters on a fresh registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Metrics{
		registry: registry,
		dashboardRemote: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "inteldash",
			Name:      "dashboard_remote_total",
			Help:      "Dashboard responses served from the remote dataset",
		}),
		dashboardFallback: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "inteldash",
			Name:      "dashboard_fallback_total",
			Help:      "Dashboard responses served from the static fallback",
		}),
		updateRuns: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "inteldash",
			Name:      "update_runs_total",
			Help:      "Manually triggered pipeline runs",
		}),
		updateFailures: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "inteldash",
			Name:      "update_failures_total",
			Help:      "Failed manually triggered pipeline runs",
		}),
	}
}

// Registry returns the registry backing the /metrics endpoint
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
