// Package monitoring exposes Prometheus metrics for the verification
// pipeline.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	ChecksTotal    *prometheus.CounterVec
	CheckErrors    *prometheus.CounterVec
	RegressionsSet prometheus.Counter
	SweepDuration  prometheus.Histogram
	SweepItems     prometheus.Counter
}

// New creates the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ChecksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "packmate_verification_checks_total",
			Help: "Completed verification checks by manager and status",
		}, []string{"manager", "status"}),

		CheckErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "packmate_verification_errors_total",
			Help: "Checks that raised an unrecoverable error after retries",
		}, []string{"manager"}),

		RegressionsSet: factory.NewCounter(prometheus.CounterOpts{
			Name: "packmate_regressions_flagged_total",
			Help: "Results flagged for manual review (verified -> failed)",
		}),

		SweepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "packmate_sweep_duration_seconds",
			Help:    "Duration of full catalog sweeps",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),

		SweepItems: factory.NewCounter(prometheus.CounterOpts{
			Name: "packmate_sweep_items_total",
			Help: "Pairings processed by batch sweeps",
		}),
	}
}

// NewDefault registers the collectors on the default registry.
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

// ObserveCheck records one completed check.
func (m *Metrics) ObserveCheck(manager, status string) {
	if m == nil {
		return
	}
	m.ChecksTotal.WithLabelValues(manager, status).Inc()
}

// ObserveError records an unrecoverable check error.
func (m *Metrics) ObserveError(manager string) {
	if m == nil {
		return
	}
	m.CheckErrors.WithLabelValues(manager).Inc()
}

// ObserveRegression records a newly flagged regression.
func (m *Metrics) ObserveRegression() {
	if m == nil {
		return
	}
	m.RegressionsSet.Inc()
}

// ObserveSweep records a finished sweep.
func (m *Metrics) ObserveSweep(d time.Duration, items int) {
	if m == nil {
		return
	}
	m.SweepDuration.Observe(d.Seconds())
	m.SweepItems.Add(float64(items))
}
