package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Outcomes *prometheus.CounterVec
	Attempts prometheus.Histogram
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodlink_poller_outcomes_total",
			Help: "Total number of pollers that reached a terminal state",
		}, []string{"state", "reason"}),
		Attempts: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bloodlink_poller_attempts",
			Help:    "Number of checks a poller ran before finishing",
			Buckets: prometheus.LinearBuckets(1, 2, 10),
		}),
	}
}

func (m *Metrics) ObserveOutcome(state, reason string, attempts int) {
	m.Outcomes.WithLabelValues(state, reason).Inc()
	m.Attempts.Observe(float64(attempts))
}
