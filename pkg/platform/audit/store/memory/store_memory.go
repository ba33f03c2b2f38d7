package memory

import (
	"context"
	"sync"

	audit "unitconv/pkg/platform/audit"
)

// InMemoryStore keeps events in arrival order.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListAll returns a copy of every stored event, oldest first.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...), nil
}

// ListRecent returns up to limit events, newest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := min(max(limit, 0), len(s.events))
	out := make([]audit.Event, 0, n)
	for i := len(s.events) - 1; i >= len(s.events)-n; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}
