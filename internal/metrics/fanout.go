package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fanoutPublishTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "notification_fanout",
		Name:      "publish_total",
		Help:      "Count of notifications handed to a transport.",
	}, []string{"network", "transport", "status"})

	fanoutPublishDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "notification_fanout",
		Name:      "publish_duration_seconds",
		Help:      "Duration of handing a notification to a transport.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "transport", "status"})
)

// Fanout tracks metrics for notification transports.
type Fanout struct {
	network model.Network
}

// NewFanout constructs a Fanout collector.
func NewFanout(network model.Network) *Fanout {
	if network == "" {
		network = "unknown"
	}
	return &Fanout{network: network}
}

// ObservePublish records one send to transport.
func (m Fanout) ObservePublish(transport string, err error, started time.Time) {
	status := statusOf(err)
	fanoutPublishTotal.WithLabelValues(string(m.network), transport, status).Inc()
	fanoutPublishDuration.WithLabelValues(string(m.network), transport, status).Observe(time.Since(started).Seconds())
}
