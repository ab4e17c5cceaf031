package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bankops/backoffice/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool

	// TxTimeout bounds every RunInTx scope so that a wedged transaction cannot
	// hold row locks indefinitely. Zero disables the bound.
	TxTimeout time.Duration
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// RunInTx executes fn within a single database transaction scope.
// The transaction commits when fn returns nil and rolls back otherwise; fn's
// error is propagated unchanged so typed domain failures survive the boundary.
func (r *BaseRepository) RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if r.TxTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.TxTimeout)
		defer cancel()
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// No-op once the transaction has been committed.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// Postgres error codes for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateConstraint converts database-level constraint violations into the
// typed failure taxonomy. Other errors are returned unchanged.
func translateConstraint(entity string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return &apperrors.ConstraintViolationError{
			Kind:       apperrors.ErrDuplicate,
			Entity:     entity,
			Constraint: pgErr.ConstraintName,
			Err:        err,
		}
	case pgForeignKeyViolation:
		return &apperrors.ConstraintViolationError{
			Kind:       apperrors.ErrForeignKey,
			Entity:     entity,
			Constraint: pgErr.ConstraintName,
			Err:        err,
		}
	}
	return err
}
