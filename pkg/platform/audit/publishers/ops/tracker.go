// Package ops provides a fire-and-forget audit tracker for high-volume read-side
// events such as allowable-filings decisions. Events are sampled, and dropped
// outright while the store is failing.
package ops

import (
	"context"
	"log/slog"
	"time"

	audit "lear/pkg/platform/audit"
	"lear/pkg/platform/circuit"
)

// Tracker emits operations events without blocking the caller on failure.
type Tracker struct {
	store   audit.Store
	sampler *Sampler
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Tracker)

func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(t *Tracker) {
		t.metrics = m
	}
}

func WithSampler(s *Sampler) Option {
	return func(t *Tracker) {
		t.sampler = s
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(t *Tracker) {
		t.breaker = b
	}
}

// New creates a tracker that keeps every event until configured otherwise.
func New(store audit.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:   store,
		sampler: NewSampler(1),
		breaker: circuit.New("audit-ops", circuit.WithCooldown(time.Minute)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Track records event unless it is sampled out or the breaker is open.
// Persistence errors are counted and logged, never returned.
func (t *Tracker) Track(ctx context.Context, event audit.Event) {
	if !t.sampler.ShouldSample(event.Action) {
		t.metrics.IncSampled()
		return
	}
	if !t.breaker.Allow() {
		t.metrics.IncCircuitBreakerDropped()
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Category = audit.CategoryOperations

	if err := t.store.Append(ctx, event); err != nil {
		t.metrics.IncPersistFailures()
		_, change := t.breaker.RecordFailure()
		if change.Opened {
			t.metrics.SetCircuitBreakerState(true)
			if t.logger != nil {
				t.logger.WarnContext(ctx, "ops audit circuit opened", "error", err)
			}
		}
		return
	}
	_, change := t.breaker.RecordSuccess()
	if change.Closed {
		t.metrics.SetCircuitBreakerState(false)
	}
	t.metrics.IncTracked()
}
