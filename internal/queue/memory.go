package queue

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// Record is one message held by the in-memory queue.
type Record struct {
	Key   []byte
	Value []byte
}

// Memory keeps produced records per topic.
type Memory struct {
	mu      sync.Mutex
	records map[string][]Record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string][]Record)}
}

func (m *Memory) Produce(_ context.Context, topic string, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[topic] = append(m.records[topic], Record{Key: key, Value: value})
	return nil
}

func (m *Memory) PublishFiling(ctx context.Context, topic string, filingID int64) error {
	value, err := EncodeFiling(filingID, time.Now())
	if err != nil {
		return err
	}
	return m.Produce(ctx, topic, []byte(strconv.FormatInt(filingID, 10)), value)
}

// Records returns a copy of what was produced to topic.
func (m *Memory) Records(topic string) []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records[topic]))
	copy(out, m.records[topic])
	return out
}
