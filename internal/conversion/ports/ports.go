// Package ports defines the interfaces the conversion service depends on.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks Cache,HistoryStore,AuditPublisher

import (
	"context"
	"time"

	"unitconv/internal/conversion/models"
	"unitconv/pkg/platform/audit"
)

// Cache stores formatted conversion results. Get returns sentinel.ErrNotFound
// on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// HistoryStore keeps performed conversions.
type HistoryStore interface {
	Append(ctx context.Context, records ...models.Record) error
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.Record, error)
}

// AuditPublisher emits audit events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
