package config

import (
	"os"
	"strings"
	"time"
)

// Config collects process-level settings. One struct built from the
// environment so main stays lean.
type Config struct {
	PostgresDSN string
	Redis       RedisConfig
	Kafka       KafkaConfig
	SessionTTL  time.Duration
}

// RedisConfig holds connection settings for the session cache. An empty URL
// disables Redis and falls back to the in-memory session store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds audit-publishing settings. No brokers disables Kafka
// and routes audit events to the structured log.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		PostgresDSN: os.Getenv("BOARDKEEP_PG_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("BOARDKEEP_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			AuditTopic: envOr("BOARDKEEP_AUDIT_TOPIC", "boardkeep.audit"),
		},
		SessionTTL: durationOr("BOARDKEEP_SESSION_TTL", 12*time.Hour),
	}
	if brokers := os.Getenv("BOARDKEEP_KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
