// Package history stores performed conversions.
package history

import (
	"context"
	"sync"

	"unitconv/internal/conversion/models"
)

// InMemory keeps at most capacity records, discarding the oldest.
type InMemory struct {
	mu       sync.RWMutex
	records  []models.Record
	capacity int
}

// DefaultCapacity bounds the in-memory history.
const DefaultCapacity = 1000

func NewInMemory(capacity int) *InMemory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InMemory{capacity: capacity}
}

func (s *InMemory) Append(_ context.Context, records ...models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	if over := len(s.records) - s.capacity; over > 0 {
		s.records = append([]models.Record(nil), s.records[over:]...)
	}
	return nil
}

func (s *InMemory) ListRecent(_ context.Context, limit int) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := min(max(limit, 0), len(s.records))
	out := make([]models.Record, 0, n)
	for i := len(s.records) - 1; i >= len(s.records)-n; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}
