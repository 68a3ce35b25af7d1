package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds the application settings read from app.env and the environment
type Config struct {
	ServerAddress  string        `mapstructure:"SERVER_ADDRESS"`
	StoreDriver    string        `mapstructure:"STORE_DRIVER"`
	PostgresConn   string        `mapstructure:"POSTGRES_CONN"`
	MigrateOnStart bool          `mapstructure:"MIGRATE_ON_START"`
	LockTimeout    time.Duration `mapstructure:"LOCK_TIMEOUT"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	TxMaxAttempts  int           `mapstructure:"TX_MAX_ATTEMPTS"`
	TxRetryBackoff time.Duration `mapstructure:"TX_RETRY_BACKOFF"`

	JWTSecret          string `mapstructure:"JWT_SECRET"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	KafkaBrokers     []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic       string   `mapstructure:"KAFKA_TOPIC"`
	KafkaGroupPrefix string   `mapstructure:"KAFKA_GROUP_PREFIX"`

	AMQPURL      string `mapstructure:"AMQP_URL"`
	AMQPExchange string `mapstructure:"AMQP_EXCHANGE"`

	StreamHeartbeat     time.Duration `mapstructure:"STREAM_HEARTBEAT"`
	EventBuffer         int           `mapstructure:"EVENT_BUFFER"`
	PaymentDeadlineDays int           `mapstructure:"PAYMENT_DEADLINE_DAYS"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":        ":8080",
	"STORE_DRIVER":          DriverPostgres,
	"POSTGRES_CONN":         "",
	"MIGRATE_ON_START":      true,
	"LOCK_TIMEOUT":          5 * time.Second,
	"REQUEST_TIMEOUT":       10 * time.Second,
	"TX_MAX_ATTEMPTS":       3,
	"TX_RETRY_BACKOFF":      25 * time.Millisecond,
	"JWT_SECRET":            "",
	"RATE_LIMIT_PER_MINUTE": 30,
	"REDIS_ADDR":            "",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"KAFKA_BROKERS":         []string{},
	"KAFKA_TOPIC":           "allocation-events",
	"KAFKA_GROUP_PREFIX":    "allocation-tracker",
	"AMQP_URL":              "",
	"AMQP_EXCHANGE":         "allocation",
	"STREAM_HEARTBEAT":      25 * time.Second,
	"EVENT_BUFFER":          16,
	"PAYMENT_DEADLINE_DAYS": 5,
	"LOG_LEVEL":             "info",
}

// LoadConfig reads app.env from path when present; environment variables override file values
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read app.env: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the process cannot run with
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.PostgresConn == "" {
			return errors.New("config: POSTGRES_CONN is required for the postgres store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.TxMaxAttempts < 1 {
		return errors.New("config: TX_MAX_ATTEMPTS must be at least 1")
	}
	if c.RateLimitPerMinute < 1 {
		return errors.New("config: RATE_LIMIT_PER_MINUTE must be at least 1")
	}
	if c.EventBuffer < 1 {
		return errors.New("config: EVENT_BUFFER must be at least 1")
	}
	if c.StreamHeartbeat <= 0 {
		return errors.New("config: STREAM_HEARTBEAT must be positive")
	}
	return nil
}
