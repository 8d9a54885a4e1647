package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors reported by the recurrence engine. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	OccurrencesGenerated *prometheus.CounterVec
	SeriesGenerated      prometheus.Counter
	SeriesExtended       prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OccurrencesGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue",
			Name:      "occurrences_generated_total",
			Help:      "Occurrences materialized from recurring events.",
		}, []string{"recurrence"}),
		SeriesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "venue",
			Name:      "series_generated_total",
			Help:      "Recurring events created.",
		}),
		SeriesExtended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "venue",
			Name:      "series_extended_total",
			Help:      "Recurring events extended into a new period.",
		}),
	}
	reg.MustRegister(m.OccurrencesGenerated, m.SeriesGenerated, m.SeriesExtended)
	return m
}

func (m *Metrics) ObserveOccurrences(recurrence string, n int) {
	if m == nil {
		return
	}
	m.OccurrencesGenerated.WithLabelValues(recurrence).Add(float64(n))
}

func (m *Metrics) ObserveSeriesGenerated() {
	if m == nil {
		return
	}
	m.SeriesGenerated.Inc()
}

func (m *Metrics) ObserveSeriesExtended() {
	if m == nil {
		return
	}
	m.SeriesExtended.Inc()
}
