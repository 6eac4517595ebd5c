package worker

import (
	"context"
	"log/slog"
	"time"

	"lear/pkg/platform/audit/store/postgres"

	"github.com/google/uuid"
)

// Outbox is the relay's view of the audit outbox table.
type Outbox interface {
	FetchUnpublished(ctx context.Context, limit int) ([]postgres.Entry, error)
	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Producer publishes a keyed record to a topic.
type Producer interface {
	Produce(ctx context.Context, topic string, key, value []byte) error
}

// TxRunner runs fn in one database transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Worker relays audit outbox rows to Kafka. Each batch is fetched, published and
// marked inside one transaction; a publish failure rolls the batch back so the
// rows are retried on the next tick.
type Worker struct {
	outbox    Outbox
	producer  Producer
	tx        TxRunner
	topic     string
	batchSize int
	interval  time.Duration
	logger    *slog.Logger
}

type Option func(*Worker)

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func NewWorker(outbox Outbox, producer Producer, tx TxRunner, topic string, opts ...Option) *Worker {
	w := &Worker{
		outbox:    outbox,
		producer:  producer,
		tx:        tx,
		topic:     topic,
		batchSize: 100,
		interval:  time.Second,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run relays until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.RelayOnce(ctx); err != nil {
				w.logger.WarnContext(ctx, "audit outbox relay failed", "error", err)
			}
		}
	}
}

// RelayOnce publishes one batch and returns how many rows were relayed.
func (w *Worker) RelayOnce(ctx context.Context) (int, error) {
	relayed := 0
	err := w.tx.RunInTx(ctx, func(ctx context.Context) error {
		entries, err := w.outbox.FetchUnpublished(ctx, w.batchSize)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, e := range entries {
			if err := w.producer.Produce(ctx, w.topic, []byte(e.AggregateID), e.Payload); err != nil {
				return err
			}
			if err := w.outbox.MarkPublished(ctx, e.ID, now); err != nil {
				return err
			}
		}
		relayed = len(entries)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return relayed, nil
}
