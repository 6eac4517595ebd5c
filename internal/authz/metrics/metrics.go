package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for allowed-filings decisions.
type Metrics struct {
	// Facts loading latencies by source
	FactsLatency *prometheus.HistogramVec

	// Allowed-filings evaluations by business kind
	Decisions *prometheus.CounterVec

	// Submission checks denied, by filing type
	Denied *prometheus.CounterVec

	ViewAllFailures prometheus.Counter

	DecisionLatency prometheus.Histogram
}

// New registers the authz metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FactsLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lear_authz_facts_duration_seconds",
			Help:    "Duration of loading decision facts by source",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"source"}), // source: "open_filings", "state_filing", "completed_filings"

		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lear_authz_decisions_total",
			Help: "Total allowed-filings evaluations",
		}, []string{"kind"}), // kind: "business", "bootstrap"

		Denied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lear_authz_denied_total",
			Help: "Total filing submissions denied by the resolver",
		}, []string{"filing_type"}),

		ViewAllFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "lear_authz_view_all_failures_total",
			Help: "Total failed view-all lookups against the accounts service",
		}),

		DecisionLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lear_authz_decision_duration_seconds",
			Help:    "Duration of a full allowable-actions evaluation including facts loading",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) ObserveFactsLatency(source string, d time.Duration) {
	if m != nil {
		m.FactsLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementDecision(kind string) {
	if m != nil {
		m.Decisions.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncrementDenied(filingType string) {
	if m != nil {
		m.Denied.WithLabelValues(filingType).Inc()
	}
}

func (m *Metrics) IncrementViewAllFailure() {
	if m != nil {
		m.ViewAllFailures.Inc()
	}
}

func (m *Metrics) ObserveDecisionLatency(d time.Duration) {
	if m != nil {
		m.DecisionLatency.Observe(d.Seconds())
	}
}
