package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager exposes explicit transaction control for repositories
// whose write paths span several statements, such as posting a journal
// together with its ledger entries and balance updates.
type TransactionManager interface {
	// Begin opens a new transaction against the underlying pool.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit finalizes the transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback abandons the transaction. Safe to defer after Begin; rolling
	// back an already-committed transaction is a no-op at the pgx level.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
