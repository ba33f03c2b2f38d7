package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryAllow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewInMemory()
	store.now = func() time.Time { return now }

	for i := range 3 {
		res, err := store.Allow(ctx, "ip:1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := store.Allow(ctx, "ip:1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, now.Add(time.Minute), res.ResetAt)

	t.Run("other keys are independent", func(t *testing.T) {
		res, err := store.Allow(ctx, "ip:2", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})

	t.Run("window slides", func(t *testing.T) {
		now = now.Add(time.Minute + time.Second)
		res, err := store.Allow(ctx, "ip:1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2, res.Remaining)
	})
}

func TestInMemorySweep(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewInMemory()
	store.now = func() time.Time { return now }

	_, _ = store.Allow(context.Background(), "ip:1", 5, time.Minute)
	assert.Equal(t, 0, store.Sweep(time.Minute))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, store.Sweep(time.Minute))
}
