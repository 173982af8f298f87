package metrics

import (
	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	listenerMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "listener",
		Name:      "messages_total",
		Help:      "Count of settled feed messages by outcome.",
	}, []string{"network", "outcome"})

	listenerParked = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "listener",
		Name:      "parked_transactions",
		Help:      "Transactions waiting for inputs the ledger has not seen.",
	}, []string{"network"})

	listenerErrorBudget = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "listener",
		Name:      "error_budget_used",
		Help:      "Errors counted against the error budget in the current session.",
	}, []string{"network"})
)

// Listener tracks metrics for the listener session.
type Listener struct {
	network model.Network
}

// NewListener constructs a Listener collector.
func NewListener(network model.Network) *Listener {
	if network == "" {
		network = "unknown"
	}
	return &Listener{network: network}
}

func (m Listener) ObserveMessage(outcome string) {
	listenerMessagesTotal.WithLabelValues(string(m.network), outcome).Inc()
}

func (m Listener) SetParked(n int) {
	listenerParked.WithLabelValues(string(m.network)).Set(float64(n))
}

func (m Listener) SetErrorCount(n int64) {
	listenerErrorBudget.WithLabelValues(string(m.network)).Set(float64(n))
}
