// Package ratelimit caps requests per client over a sliding window.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Result is the outcome of one admission check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store admits or rejects one request for key.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
}

type slidingWindow struct {
	timestamps []time.Time
}

// cleanup drops timestamps at or before cutoff.
func (sw *slidingWindow) cleanup(cutoff time.Time) {
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

// InMemory keeps a sliding window of request timestamps per key.
type InMemory struct {
	mu      sync.Mutex
	windows map[string]*slidingWindow
	now     func() time.Time
}

func NewInMemory() *InMemory {
	return &InMemory{windows: make(map[string]*slidingWindow), now: time.Now}
}

func (s *InMemory) Allow(_ context.Context, key string, limit int, window time.Duration) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sw := s.windows[key]
	if sw == nil {
		sw = &slidingWindow{}
		s.windows[key] = sw
	}
	sw.cleanup(now.Add(-window))

	if len(sw.timestamps) >= limit {
		return Result{Allowed: false, Limit: limit, ResetAt: sw.timestamps[0].Add(window)}, nil
	}
	sw.timestamps = append(sw.timestamps, now)
	return Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(sw.timestamps),
		ResetAt:   sw.timestamps[0].Add(window),
	}, nil
}

// Sweep drops keys whose windows emptied before now-window.
func (s *InMemory) Sweep(window time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-window)
	removed := 0
	for key, sw := range s.windows {
		sw.cleanup(cutoff)
		if len(sw.timestamps) == 0 {
			delete(s.windows, key)
			removed++
		}
	}
	return removed
}

const redisKeyPrefix = "unitconv:rl:"

// Redis keeps the window as a sorted set of request timestamps so every
// replica shares the same count.
type Redis struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client, now: time.Now}
}

func (s *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	now := s.now()
	redisKey := redisKeyPrefix + key
	cutoff := strconv.FormatInt(now.Add(-window).UnixMicro(), 10)

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", cutoff)
	count := pipe.ZCard(ctx, redisKey)
	oldest := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit window %s: %w", key, err)
	}

	resetAt := now.Add(window)
	if zs := oldest.Val(); len(zs) > 0 {
		resetAt = time.UnixMicro(int64(zs[0].Score)).Add(window)
	}
	n := int(count.Val())
	if n >= limit {
		return Result{Allowed: false, Limit: limit, ResetAt: resetAt}, nil
	}

	pipe = s.client.TxPipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixMicro()), Member: uuid.NewString()})
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit record %s: %w", key, err)
	}
	if n == 0 {
		resetAt = now.Add(window)
	}
	return Result{Allowed: true, Limit: limit, Remaining: limit - n - 1, ResetAt: resetAt}, nil
}
