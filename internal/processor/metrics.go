package processor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/heavyguana-aym/kithmonite/internal/ledger"
)

var transactionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "kithmonite",
		Name:      "transactions_total",
		Help:      "Total number of transactions seen by the processor",
	},
	[]string{"kind", "outcome"},
)

func observe(kind ledger.Kind, err error) {
	outcome := "applied"
	if err != nil {
		outcome = "rejected"
	}
	transactionsTotal.WithLabelValues(kind.String(), outcome).Inc()
}
