package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration

	// DatabaseURL enables the postgres audit store when set; the in-memory
	// store is used otherwise.
	DatabaseURL string

	Redis RedisConfig

	// AuditBrokers enables the Kafka audit mirror when non-empty.
	AuditBrokers []string
	AuditTopic   string
}

// RedisConfig holds connection settings for the optional redis decision store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// DecisionTTL bounds how long finalized decisions stay addressable by
	// workflow actions. Zero means no expiry.
	DecisionTTL time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ARBITER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	cfg := Server{
		Addr:            addr,
		ShutdownTimeout: durationEnv("ARBITER_SHUTDOWN_TIMEOUT", 10*time.Second),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AuditTopic:      os.Getenv("AUDIT_TOPIC"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: intEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			DecisionTTL:  durationEnv("REDIS_DECISION_TTL", 0),
		},
	}

	if brokers := os.Getenv("AUDIT_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.AuditBrokers = append(cfg.AuditBrokers, b)
			}
		}
	}
	if cfg.AuditTopic == "" {
		cfg.AuditTopic = "arbiter.audit"
	}

	return cfg
}

func intEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			return d
		}
	}
	return fallback
}
