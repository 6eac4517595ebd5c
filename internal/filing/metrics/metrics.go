package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the filing lifecycle.
type Metrics struct {
	// Status transitions by target status
	Transitions *prometheus.CounterVec

	// Non-draft submissions by outcome
	Submissions *prometheus.CounterVec

	// Invoice failures by error code
	PaymentFailures *prometheus.CounterVec

	// Queue hand-offs that failed, by topic
	PublishFailures *prometheus.CounterVec

	LockContention prometheus.Counter

	OperationLatency *prometheus.HistogramVec
}

// New registers the filing metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lear_filing_transitions_total",
			Help: "Total filing status transitions",
		}, []string{"status"}),

		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lear_filing_submissions_total",
			Help: "Total filing submissions by outcome",
		}, []string{"outcome"}), // outcome: "draft", "pending", "paid", "review", "legacy"

		PaymentFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lear_filing_payment_failures_total",
			Help: "Total invoice requests that failed",
		}, []string{"code"}),

		PublishFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lear_filing_publish_failures_total",
			Help: "Total queue publications that failed",
		}, []string{"topic"}),

		LockContention: f.NewCounter(prometheus.CounterOpts{
			Name: "lear_filing_lock_contention_total",
			Help: "Total submissions rejected because another submission held the lock",
		}),

		OperationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lear_filing_operation_duration_seconds",
			Help:    "Duration of filing operations",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementTransition(status string) {
	if m != nil {
		m.Transitions.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncrementSubmission(outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementPaymentFailure(code string) {
	if m != nil {
		m.PaymentFailures.WithLabelValues(code).Inc()
	}
}

func (m *Metrics) IncrementPublishFailure(topic string) {
	if m != nil {
		m.PublishFailures.WithLabelValues(topic).Inc()
	}
}

func (m *Metrics) IncrementLockContention() {
	if m != nil {
		m.LockContention.Inc()
	}
}

func (m *Metrics) ObserveOperation(op string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(op).Observe(d.Seconds())
	}
}
