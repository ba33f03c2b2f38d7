// Package cache stores formatted conversion results.
package cache

import (
	"context"
	"sync"
	"time"

	"unitconv/pkg/platform/sentinel"
)

type entry struct {
	value   string
	expires time.Time
}

// InMemory is a TTL map. Expired entries are dropped lazily on Get and by
// Sweep.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[string]entry), now: time.Now}
}

func (c *InMemory) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", sentinel.ErrNotFound
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur == e {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return "", sentinel.ErrNotFound
	}
	return e.value, nil
}

// Set stores value. A non-positive ttl never expires.
func (c *InMemory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
	return nil
}

// Sweep removes expired entries and returns how many were removed.
func (c *InMemory) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.entries {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not.
func (c *InMemory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
