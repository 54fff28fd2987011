// SPDX-License-Identifier: MIT

package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Evolution modes used as the "mode" label.
const (
	ModeFixed = "fixed"
	ModeExact = "exact"
)

// Metrics holds the prometheus collectors of the engine.
type Metrics struct {
	evolutions *prometheus.CounterVec
	failures   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	reachable  *prometheus.HistogramVec
}

// NewMetrics creates the engine collectors and registers them with reg.
// A nil reg leaves them unregistered. Registering twice with the same
// registry panics, as promauto does.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		evolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "decaychain_evolutions_total",
			Help: "Completed decay evolutions by arithmetic mode.",
		}, []string{"mode"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "decaychain_evolution_failures_total",
			Help: "Rejected or failed decay evolutions by arithmetic mode.",
		}, []string{"mode"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "decaychain_evolution_seconds",
			Help:    "Wall time of one decay evolution.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"mode"}),
		reachable: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "decaychain_reachable_nuclides",
			Help:    "Size of the reachable set of one decay evolution.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"mode"}),
	}
}

// observe records one evolution. A nil receiver is a no-op.
func (m *Metrics) observe(mode string, start time.Time, reach int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.failures.WithLabelValues(mode).Inc()
		return
	}
	m.evolutions.WithLabelValues(mode).Inc()
	m.duration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	m.reachable.WithLabelValues(mode).Observe(float64(reach))
}
