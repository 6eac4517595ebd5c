package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"lear/internal/platform/config"
)

// Kafka produces to a Kafka-compatible cluster.
type Kafka struct {
	client *kgo.Client
	logger *slog.Logger
}

// NewKafka connects to cfg.Brokers and, when cfg.CreateTopics is set, creates
// the filer, colin, email and audit topics.
func NewKafka(ctx context.Context, cfg config.KafkaConfig, logger *slog.Logger) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(5*time.Millisecond),
		kgo.RecordRetries(5),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}

	k := &Kafka{client: client, logger: logger}
	if cfg.CreateTopics {
		err := k.EnsureTopics(ctx, cfg.Partitions, cfg.ReplicationFactor,
			cfg.FilerTopic, cfg.ColinTopic, cfg.EmailTopic, cfg.AuditTopic)
		if err != nil {
			client.Close()
			return nil, err
		}
	}
	return k, nil
}

// EnsureTopics creates the topics that do not exist yet.
func (k *Kafka) EnsureTopics(ctx context.Context, partitions int32, replication int16, topics ...string) error {
	adm := kadm.NewClient(k.client)
	resp, err := adm.CreateTopics(ctx, partitions, replication, nil, topics...)
	if err != nil {
		return fmt.Errorf("create topics: %w", err)
	}
	for _, r := range resp.Sorted() {
		switch {
		case r.Err == nil:
			k.logger.InfoContext(ctx, "kafka topic created", "topic", r.Topic)
		case errors.Is(r.Err, kerr.TopicAlreadyExists):
		default:
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Produce writes one record and waits for the broker acknowledgement.
func (k *Kafka) Produce(ctx context.Context, topic string, key, value []byte) error {
	rec := &kgo.Record{Topic: topic, Key: key, Value: value}
	if err := k.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}
	return nil
}

// PublishFiling announces filingID on topic, keyed by the filing id.
func (k *Kafka) PublishFiling(ctx context.Context, topic string, filingID int64) error {
	value, err := EncodeFiling(filingID, time.Now())
	if err != nil {
		return err
	}
	return k.Produce(ctx, topic, []byte(strconv.FormatInt(filingID, 10)), value)
}

// Health pings the cluster.
func (k *Kafka) Health(ctx context.Context) error {
	return k.client.Ping(ctx)
}

func (k *Kafka) Close() {
	k.client.Close()
}
