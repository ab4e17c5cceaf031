package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// UnitOfWork is the single transaction boundary used by money-movement operations.
// RunInTx begins a transaction, invokes fn, commits when fn returns nil and rolls
// back otherwise, propagating fn's error unchanged. The scope is bounded by a
// timeout so a wedged transaction cannot hold row locks indefinitely. Nesting is
// not supported: each operation opens exactly one scope.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
