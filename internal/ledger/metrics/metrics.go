// Package metrics exposes Prometheus collectors for the donation ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AppendsTotal  *prometheus.CounterVec
	LoggedAmount  prometheus.Counter
	DonationCount prometheus.Gauge
}

// New registers the ledger collectors with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		AppendsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "tally_ledger_appends_total",
			Help: "Ledger appends by outcome (logged, capacity_exceeded, rejected).",
		}, []string{"outcome"}),
		LoggedAmount: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "tally_ledger_logged_amount_total",
			Help: "Sum of donation amounts appended to the ledger.",
		}),
		DonationCount: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "tally_ledger_donations",
			Help: "Donations recorded by this ledger instance.",
		}),
	}
}
