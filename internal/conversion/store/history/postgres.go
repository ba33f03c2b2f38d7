package history

import (
	"context"
	"database/sql"
	"fmt"

	"unitconv/internal/conversion/models"
	id "unitconv/pkg/domain"
	txcontext "unitconv/pkg/platform/tx"
)

// PostgresStore persists records in the conversions table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const insertRecord = `
INSERT INTO conversions (id, dimension, input, target, result, request_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Append writes all records in one transaction, joining a caller's
// transaction when ctx carries one.
func (s *PostgresStore) Append(ctx context.Context, records ...models.Record) error {
	if len(records) == 0 {
		return nil
	}
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		exec := txcontext.ExecutorFor(ctx, s.db)
		for _, r := range records {
			_, err := exec.ExecContext(ctx, insertRecord,
				r.ID.String(), string(r.Kind), r.Input, r.Target, r.Result, r.RequestID, r.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert conversion %s: %w", r.ID, err)
			}
		}
		return nil
	})
}

const selectRecent = `
SELECT id, dimension, input, target, result, request_id, created_at
FROM conversions
ORDER BY created_at DESC, id
LIMIT $1`

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]models.Record, error) {
	if limit <= 0 {
		return []models.Record{}, nil
	}
	rows, err := txcontext.ExecutorFor(ctx, s.db).QueryContext(ctx, selectRecent, limit)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, limit)
	for rows.Next() {
		var (
			r       models.Record
			rawID   string
			rawKind string
		)
		if err := rows.Scan(&rawID, &rawKind, &r.Input, &r.Target, &r.Result, &r.RequestID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		if r.ID, err = id.ParseConversionID(rawID); err != nil {
			return nil, fmt.Errorf("scan conversion id: %w", err)
		}
		r.Kind = id.Kind(rawKind)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}
	return records, nil
}
