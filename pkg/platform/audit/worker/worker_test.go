package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lear/pkg/platform/audit/store/postgres"
)

type fakeOutbox struct {
	entries   []postgres.Entry
	published []uuid.UUID
}

func (f *fakeOutbox) FetchUnpublished(_ context.Context, limit int) ([]postgres.Entry, error) {
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func (f *fakeOutbox) MarkPublished(_ context.Context, id uuid.UUID, _ time.Time) error {
	f.published = append(f.published, id)
	return nil
}

type fakeProducer struct {
	keys []string
	err  error
}

func (f *fakeProducer) Produce(_ context.Context, _ string, key, _ []byte) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, string(key))
	return nil
}

type inlineTx struct{}

func (inlineTx) RunInTx(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }

func TestRelayOnce(t *testing.T) {
	outbox := &fakeOutbox{entries: []postgres.Entry{
		{ID: uuid.New(), AggregateID: "BC1", Payload: []byte(`{}`)},
		{ID: uuid.New(), AggregateID: "BC2", Payload: []byte(`{}`)},
	}}
	producer := &fakeProducer{}
	w := NewWorker(outbox, producer, inlineTx{}, "audit", WithBatchSize(10))

	n, err := w.RelayOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"BC1", "BC2"}, producer.keys)
	assert.Len(t, outbox.published, 2)
}

func TestRelayOnceProducerFailure(t *testing.T) {
	outbox := &fakeOutbox{entries: []postgres.Entry{{ID: uuid.New(), AggregateID: "BC1"}}}
	w := NewWorker(outbox, &fakeProducer{err: errors.New("broker down")}, inlineTx{}, "audit")

	n, err := w.RelayOnce(context.Background())
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Empty(t, outbox.published)
}
