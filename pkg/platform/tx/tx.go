// Package tx carries a SQL transaction through context so stores can join it.
package tx

import (
	"context"
	"database/sql"
	"fmt"
)

type ctxKey struct{}

var txKey = ctxKey{}

// Executor is satisfied by *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// ExecutorFor returns the transaction in ctx, or db when there is none.
func ExecutorFor(ctx context.Context, db *sql.DB) Executor {
	if tx, ok := From(ctx); ok {
		return tx
	}
	return db
}

// Run executes fn inside a transaction, joining one already in ctx.
// The transaction commits when fn returns nil and rolls back otherwise.
func Run(ctx context.Context, db *sql.DB, fn func(ctx context.Context) error) error {
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}
	sqlTx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(WithTx(ctx, sqlTx)); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
