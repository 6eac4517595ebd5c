package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "filer", cfg.Kafka.FilerTopic)
	assert.Equal(t, 30*time.Second, cfg.Filing.SubmissionLockTTL)
	assert.Equal(t, time.Date(2019, 3, 8, 0, 0, 0, 0, time.UTC), cfg.Filing.LegacyEpoch)
	assert.True(t, cfg.IsLocal())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,kafka-1:9092")
	t.Setenv("SUBMISSION_LOCK_TTL", "1m")
	t.Setenv("ENVIRONMENT", "prod")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Minute, cfg.Filing.SubmissionLockTTL)
	assert.False(t, cfg.IsLocal())
}
