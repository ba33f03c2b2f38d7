package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"unitconv/pkg/platform/sentinel"
)

const defaultPrefix = "unitconv:conv:"

// Redis stores results under a key prefix.
type Redis struct {
	client redis.Cmdable
	prefix string
}

func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client, prefix: defaultPrefix}
}

func (c *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w: %w", sentinel.ErrUnavailable, err)
	}
	return v, nil
}

func (c *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}
