package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SourceFailures *prometheus.CounterVec
	SkippedRecords prometheus.Counter
	SearchResults  prometheus.Histogram
}

// New registers donor metrics with the default registry. Call once per process.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers donor metrics with reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SourceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodlink_donor_source_failures_total",
			Help: "Total number of donor source reads that failed and were treated as empty",
		}, []string{"source"}),
		SkippedRecords: factory.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_donor_skipped_records_total",
			Help: "Total number of donor records with an invalid blood group",
		}),
		SearchResults: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bloodlink_donor_search_results",
			Help:    "Number of donors returned per search",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		}),
	}
}

func (m *Metrics) IncrementSourceFailure(source string) {
	m.SourceFailures.WithLabelValues(source).Inc()
}

func (m *Metrics) AddSkipped(count int) {
	m.SkippedRecords.Add(float64(count))
}

func (m *Metrics) ObserveSearchResults(count int) {
	m.SearchResults.Observe(float64(count))
}
