// Package postgres opens the history database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"unitconv/internal/platform/config"
)

// Schema creates the tables the service writes. Statements are idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS conversions (
    id          UUID PRIMARY KEY,
    dimension   TEXT NOT NULL,
    input       TEXT NOT NULL,
    target      TEXT NOT NULL,
    result      TEXT NOT NULL,
    request_id  TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS conversions_created_at_idx ON conversions (created_at DESC);
`

// Open connects with lib/pq and pings. Returns nil, nil when the URL is empty.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return db, nil
}

// Migrate applies Schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
