// Package metrics exposes Prometheus collectors for the quota enforcer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ChecksTotal    *prometheus.CounterVec
	ReleasesTotal  prometheus.Counter
	CyclesAdvanced prometheus.Counter
	RecordedAmount prometheus.Counter
}

// New registers the enforcer collectors with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ChecksTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "tally_enforcer_checks_total",
			Help: "Quota checks by outcome (accepted, quota_exceeded, rejected).",
		}, []string{"outcome"}),
		ReleasesTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "tally_enforcer_releases_total",
			Help: "Compensating releases performed by the donate saga.",
		}),
		CyclesAdvanced: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "tally_enforcer_cycles_advanced_total",
			Help: "Cycle boundary advances, lazy and forced.",
		}),
		RecordedAmount: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "tally_enforcer_recorded_amount_total",
			Help: "Sum of donation amounts accepted by quota checks.",
		}),
	}
}
