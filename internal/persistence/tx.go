package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so every repository method can run
// against the pool or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxManager runs a function inside a database transaction. Services
// depend on this rather than the pool directly.
type TxManager interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type poolTxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager wraps a pool as a TxManager.
func NewTxManager(pool *pgxpool.Pool) TxManager {
	return &poolTxManager{pool: pool}
}

func (m *poolTxManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return WithTx(ctx, m.pool, fn)
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back on error. Mutations that must be atomic with their history append
// go through here.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
