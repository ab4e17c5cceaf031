package repositories

import (
	"context"
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransferReader defines read operations for transfer data
type TransferReader interface {
	// FindTransferByID retrieves a specific transfer by its unique identifier.
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)

	// ListTransfersByAccount retrieves transfers touching an account, newest first,
	// using token-based pagination.
	ListTransfersByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transfer, *string, error)
}

// TransferTransactionSupport defines operations that run inside a unit-of-work scope.
type TransferTransactionSupport interface {
	// FindTransferByIDForUpdate retrieves a transfer and locks its row (FOR UPDATE)
	// within a transaction, so a status check cannot race a concurrent reversal.
	FindTransferByIDForUpdate(ctx context.Context, tx pgx.Tx, transferID string) (*domain.Transfer, error)

	// SaveTransferInTx persists a new transfer within a transaction.
	SaveTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error

	// UpdateTransferStatusInTx transitions a transfer's status within a transaction.
	UpdateTransferStatusInTx(ctx context.Context, tx pgx.Tx, transferID string, status domain.TransferStatus, userID string, now time.Time) error
}

// TransferRepositoryFacade combines all transfer-related repository interfaces
type TransferRepositoryFacade interface {
	TransferReader
	TransferTransactionSupport
}
