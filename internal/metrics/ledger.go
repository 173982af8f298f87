package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerProcessTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "account_ledger",
		Name:      "process_total",
		Help:      "Count of processed transactions by outcome.",
	}, []string{"network", "outcome"})

	ledgerProcessDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "account_ledger",
		Name:      "process_duration_seconds",
		Help:      "Duration of processing a transaction, notifications included.",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 5},
	}, []string{"network", "outcome"})
)

// Ledger tracks metrics for the account ledger.
type Ledger struct {
	network model.Network
}

// NewLedger constructs a Ledger collector.
func NewLedger(network model.Network) *Ledger {
	if network == "" {
		network = "unknown"
	}
	return &Ledger{network: network}
}

// ObserveProcess records the outcome of one ProcessTransaction call. Failures are
// labelled with their error kind; a delivery failure still means a commit.
func (m Ledger) ObserveProcess(err error, replayed bool, started time.Time) {
	outcome := "committed"
	switch {
	case err != nil:
		outcome = model.KindOf(err).String()
	case replayed:
		outcome = "replayed"
	}
	ledgerProcessTotal.WithLabelValues(string(m.network), outcome).Inc()
	ledgerProcessDuration.WithLabelValues(string(m.network), outcome).Observe(time.Since(started).Seconds())
}
