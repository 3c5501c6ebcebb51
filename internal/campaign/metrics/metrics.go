// Package metrics exposes Prometheus collectors for the campaign module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	DonationsTotal   *prometheus.CounterVec
	RollbacksTotal   *prometheus.CounterVec
	WithdrawalsTotal prometheus.Counter
	DonatedAmount    prometheus.Counter
}

// New registers the campaign collectors with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		DonationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "tally_campaign_donations_total",
			Help: "Donation attempts by outcome (accepted, rejected, rolled_back).",
		}, []string{"outcome"}),
		RollbacksTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "tally_campaign_rollbacks_total",
			Help: "Saga compensations by the step that failed.",
		}, []string{"step"}),
		WithdrawalsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "tally_campaign_withdrawals_total",
			Help: "Recorded withdrawals.",
		}),
		DonatedAmount: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "tally_campaign_donated_amount_total",
			Help: "Sum of accepted donation amounts.",
		}),
	}
}
