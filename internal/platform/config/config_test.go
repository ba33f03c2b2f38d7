package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"UNITCONV_ADDR", "REDIS_URL", "DATABASE_URL", "KAFKA_BROKERS", "UNITCONV_CACHE_TTL", "UNITCONV_HISTORY_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	assert.Equal(t, DefaultHistoryLimit, cfg.HistoryLimit)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "unitconv.conversions", cfg.Kafka.Topic)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("UNITCONV_ADDR", ":9090")
	t.Setenv("UNITCONV_CACHE_TTL", "90s")
	t.Setenv("UNITCONV_HISTORY_LIMIT", "100000")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,a:9092")
	t.Setenv("REDIS_POOL_SIZE", "not-a-number")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, MaxHistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.True(t, cfg.TracingEnabled)
}
