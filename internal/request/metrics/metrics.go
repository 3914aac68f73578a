package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	StoreFailures  prometheus.Counter
	SkippedRecords prometheus.Counter
}

// New registers request metrics with the default registry. Call once per process.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StoreFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_request_store_failures_total",
			Help: "Total number of active request reads that failed",
		}),
		SkippedRecords: factory.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_request_rollup_skipped_total",
			Help: "Total number of requests left out of blood group roll-ups due to an invalid blood group",
		}),
	}
}

func (m *Metrics) IncrementStoreFailures() {
	m.StoreFailures.Inc()
}

func (m *Metrics) AddSkipped(count int) {
	m.SkippedRecords.Add(float64(count))
}
