//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"unitconv/internal/ratelimit"
	"unitconv/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *ratelimit.Redis
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = ratelimit.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestLimitIsShared() {
	ctx := context.Background()
	replicaA := ratelimit.NewRedis(s.redis.Client)

	res, err := s.store.Allow(ctx, "ip:198.51.100.1", 2, time.Minute)
	s.Require().NoError(err)
	s.True(res.Allowed)
	s.Equal(1, res.Remaining)

	res, err = replicaA.Allow(ctx, "ip:198.51.100.1", 2, time.Minute)
	s.Require().NoError(err)
	s.True(res.Allowed)
	s.Equal(0, res.Remaining)

	res, err = s.store.Allow(ctx, "ip:198.51.100.1", 2, time.Minute)
	s.Require().NoError(err)
	s.False(res.Allowed)

	ttl, err := s.redis.Client.TTL(ctx, "unitconv:rl:ip:198.51.100.1").Result()
	s.Require().NoError(err)
	s.Positive(ttl)
}
