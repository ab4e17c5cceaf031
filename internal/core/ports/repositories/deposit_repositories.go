package repositories

import (
	"context"
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DepositReader defines read operations for deposit data
type DepositReader interface {
	// FindDepositAccountByID retrieves a deposit account.
	FindDepositAccountByID(ctx context.Context, depositAccountID string) (*domain.DepositAccount, error)

	// FindDepositAccountsByOwner retrieves all deposit accounts of a user.
	FindDepositAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.DepositAccount, error)

	// ListDepositTransactions retrieves the transaction history of a deposit account, newest first.
	ListDepositTransactions(ctx context.Context, depositAccountID string, limit int, offset int) ([]domain.DepositTransaction, error)
}

// DepositTransactionSupport defines operations that run inside a unit-of-work scope.
type DepositTransactionSupport interface {
	// SaveDepositAccountInTx persists a new deposit account link within a
	// transaction, alongside the funding movement that opens it.
	SaveDepositAccountInTx(ctx context.Context, tx pgx.Tx, deposit domain.DepositAccount) error
	// FindDepositAccountByIDForUpdate retrieves a deposit account and locks its
	// row (FOR UPDATE) within a transaction, so closing cannot race a concurrent
	// close of the same deposit.
	FindDepositAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, depositAccountID string) (*domain.DepositAccount, error)

	// UpdateDepositStatusInTx transitions a deposit account's status within a transaction.
	UpdateDepositStatusInTx(ctx context.Context, tx pgx.Tx, depositAccountID string, status domain.DepositAccountStatus, userID string, now time.Time) error

	// SaveDepositTransactionInTx persists a deposit transaction record within a transaction.
	SaveDepositTransactionInTx(ctx context.Context, tx pgx.Tx, depositTxn domain.DepositTransaction) error
}

// DepositRepositoryFacade combines all deposit-related repository interfaces
type DepositRepositoryFacade interface {
	DepositReader
	DepositTransactionSupport
}
