package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeAllowed   = "allowed"
	OutcomeThrottled = "throttled"
)

type Metrics struct {
	Decisions      *prometheus.CounterVec
	CorruptEntries prometheus.Counter
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodlink_cooldown_decisions_total",
			Help: "Total number of cooldown checks by outcome",
		}, []string{"outcome"}),
		CorruptEntries: factory.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_cooldown_corrupt_entries_total",
			Help: "Total number of unreadable cooldown entries that were discarded",
		}),
	}
}

func (m *Metrics) ObserveDecision(allowed bool) {
	outcome := OutcomeThrottled
	if allowed {
		outcome = OutcomeAllowed
	}
	m.Decisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementCorrupt() {
	m.CorruptEntries.Inc()
}
