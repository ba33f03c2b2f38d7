package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "unitconv/pkg/platform/strings"
)

// Server captures process level configuration.
type Server struct {
	Addr           string
	ServiceName    string
	LogFormat      string
	LogLevel       string
	TracingEnabled bool
	CacheTTL       time.Duration
	HistoryLimit   int
	Redis          RedisConfig
	Database       DatabaseConfig
	Kafka          KafkaConfig
	RateLimit      RateLimitConfig
}

// RedisConfig configures the conversion result cache. An empty URL selects
// the in-memory cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig configures the history store. An empty URL selects the
// in-memory store.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// KafkaConfig configures the audit publisher. No brokers selects the
// in-memory publisher.
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

const (
	DefaultCacheTTL     = 10 * time.Minute
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// RateLimitConfig bounds requests per client IP over a sliding window.
type RateLimitConfig struct {
	Disabled bool
	Requests int
	Window   time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:           envOr("UNITCONV_ADDR", ":8080"),
		ServiceName:    envOr("UNITCONV_SERVICE_NAME", "unitconv"),
		LogFormat:      envOr("LOG_FORMAT", "json"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		TracingEnabled: os.Getenv("OTEL_ENABLED") == "true",
		CacheTTL:       envDuration("UNITCONV_CACHE_TTL", DefaultCacheTTL),
		HistoryLimit:   clampLimit(envInt("UNITCONV_HISTORY_LIMIT", DefaultHistoryLimit)),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 500*time.Millisecond),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 500*time.Millisecond),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:  pstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			Topic:    envOr("KAFKA_TOPIC", "unitconv.conversions"),
			ClientID: envOr("KAFKA_CLIENT_ID", "unitconv"),
		},
		RateLimit: RateLimitConfig{
			Disabled: os.Getenv("RATE_LIMIT_DISABLED") == "true",
			Requests: envInt("RATE_LIMIT_REQUESTS", 600),
			Window:   envDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func clampLimit(n int) int {
	return min(n, MaxHistoryLimit)
}
