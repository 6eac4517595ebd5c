// Package config loads service configuration from the environment. A .env file in
// the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	strutil "lear/pkg/platform/strings"
)

// Config is the complete service configuration.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`

	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Payment     PaymentConfig
	NameRequest NameRequestConfig
	Accounts    AccountsConfig
	Auth        AuthConfig
	Filing      FilingConfig
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr            string        `envconfig:"SERVER_ADDR" default:":8080"`
	APIBaseURL      string        `envconfig:"API_BASE_URL" default:"http://localhost:8080/api/v2"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// DatabaseConfig selects the store backend. An empty URL runs on in-memory stores.
type DatabaseConfig struct {
	URL             string        `envconfig:"DATABASE_URL"`
	MaxOpenConns    int           `envconfig:"DATABASE_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"5m"`
	TxTimeout       time.Duration `envconfig:"DATABASE_TX_TIMEOUT" default:"5s"`
	AutoMigrate     bool          `envconfig:"DATABASE_AUTO_MIGRATE" default:"true"`
}

// RedisConfig configures the shared Redis client. An empty URL disables caching
// and the distributed submission lock.
type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// KafkaConfig configures the filing queues. No brokers selects the in-memory queue.
type KafkaConfig struct {
	Brokers           []string      `envconfig:"KAFKA_BROKERS"`
	FilerTopic        string        `envconfig:"KAFKA_FILER_TOPIC" default:"filer"`
	ColinTopic        string        `envconfig:"KAFKA_COLIN_TOPIC" default:"colin-filer"`
	EmailTopic        string        `envconfig:"KAFKA_EMAIL_TOPIC" default:"entity-email"`
	AuditTopic        string        `envconfig:"KAFKA_AUDIT_TOPIC" default:"audit-events"`
	Partitions        int32         `envconfig:"KAFKA_PARTITIONS" default:"3"`
	ReplicationFactor int16         `envconfig:"KAFKA_REPLICATION_FACTOR" default:"1"`
	CreateTopics      bool          `envconfig:"KAFKA_CREATE_TOPICS" default:"true"`
	OutboxInterval    time.Duration `envconfig:"AUDIT_OUTBOX_INTERVAL" default:"2s"`
}

// PaymentConfig points at the payment service.
type PaymentConfig struct {
	URL     string        `envconfig:"PAYMENT_SVC_URL" default:"http://localhost:8081/api/v1/payment-requests"`
	Timeout time.Duration `envconfig:"PAYMENT_SVC_TIMEOUT" default:"20s"`
}

// NameRequestConfig points at the name request service.
type NameRequestConfig struct {
	URL      string        `envconfig:"NAMEX_SVC_URL" default:"http://localhost:8082/api/v1"`
	Timeout  time.Duration `envconfig:"NAMEX_SVC_TIMEOUT" default:"10s"`
	CacheTTL time.Duration `envconfig:"NAMEX_CACHE_TTL" default:"5m"`
}

// AccountsConfig points at the accounts (auth) service.
type AccountsConfig struct {
	URL     string        `envconfig:"AUTH_SVC_URL" default:"http://localhost:8083/api/v1"`
	Timeout time.Duration `envconfig:"AUTH_SVC_TIMEOUT" default:"10s"`
}

// AuthConfig configures bearer token validation.
type AuthConfig struct {
	JWTSigningKey string `envconfig:"JWT_SIGNING_KEY" default:"dev-secret-key-change-in-production"`
	JWTIssuer     string `envconfig:"JWT_ISSUER" default:"lear"`
	JWTAudience   string `envconfig:"JWT_AUDIENCE" default:"lear-api"`
}

// FilingConfig holds filing-lifecycle settings.
type FilingConfig struct {
	// LegacyEpoch is the cut-over date: filings dated before it bypass live validation.
	LegacyEpoch       time.Time     `envconfig:"LEGACY_EPOCH" default:"2019-03-08T00:00:00Z"`
	SubmissionLockTTL time.Duration `envconfig:"SUBMISSION_LOCK_TTL" default:"30s"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	cfg.Server.AllowedOrigins = strutil.DedupeAndTrim(cfg.Server.AllowedOrigins)
	cfg.Kafka.Brokers = strutil.DedupeAndTrim(cfg.Kafka.Brokers)
	return &cfg, nil
}

// IsLocal reports the developer environment.
func (c *Config) IsLocal() bool {
	return c.Environment == "local"
}
