//go:build integration

// Package containers starts shared testcontainers for integration suites.
package containers

import (
	"sync"
	"testing"
)

// Manager lazily starts one container per backend and shares it across
// suites in the test binary. Ryuk removes them when the binary exits.
type Manager struct {
	mu       sync.Mutex
	postgres *PostgresContainer
	redis    *RedisContainer
	redpanda *RedpandaContainer
}

var (
	manager     *Manager
	managerOnce sync.Once
)

// GetManager returns the process-wide Manager.
func GetManager() *Manager {
	managerOnce.Do(func() {
		manager = &Manager{}
	})
	return manager
}

func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.postgres == nil {
		m.postgres = NewPostgresContainer(t)
	}
	return m.postgres
}

func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.redis == nil {
		m.redis = NewRedisContainer(t)
	}
	return m.redis
}

func (m *Manager) GetRedpanda(t *testing.T) *RedpandaContainer {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.redpanda == nil {
		m.redpanda = NewRedpandaContainer(t)
	}
	return m.redpanda
}
