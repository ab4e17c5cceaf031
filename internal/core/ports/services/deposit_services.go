package services

import (
	"context"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/dto"
)

// DepositReaderSvc defines read operations for deposit data
type DepositReaderSvc interface {
	// GetDepositAccountByID retrieves a deposit account.
	GetDepositAccountByID(ctx context.Context, actor domain.Actor, depositAccountID string) (*domain.DepositAccount, error)

	// ListDepositAccountsByOwner retrieves a user's deposit accounts.
	ListDepositAccountsByOwner(ctx context.Context, actor domain.Actor, ownerUserID string) ([]domain.DepositAccount, error)

	// ListDepositTransactions retrieves a deposit account's transaction history.
	ListDepositTransactions(ctx context.Context, actor domain.Actor, depositAccountID string, limit int, offset int) ([]domain.DepositTransaction, error)
}

// DepositWriterSvc defines the deposit lifecycle operations
type DepositWriterSvc interface {
	// CreateDepositAccount opens a deposit funded from the client's settlement
	// account: debits the funding account, credits the new deposit account, and
	// records the opening DEPOSIT transaction, atomically.
	CreateDepositAccount(ctx context.Context, actor domain.Actor, req dto.CreateDepositAccountRequest) (*domain.DepositAccount, error)

	// TopUpDeposit moves more money from the funding account into the deposit.
	TopUpDeposit(ctx context.Context, actor domain.Actor, depositAccountID string, req dto.TopUpDepositRequest) (*domain.DepositTransaction, error)

	// CloseDeposit pays the full deposit balance out to the destination account,
	// records the closing WITHDRAWAL transaction, and blocks the deposit.
	// Closing is irreversible.
	CloseDeposit(ctx context.Context, actor domain.Actor, depositAccountID string, req dto.CloseDepositRequest) (*domain.DepositAccount, error)
}

// DepositSvcFacade combines all deposit-related service interfaces
type DepositSvcFacade interface {
	DepositReaderSvc
	DepositWriterSvc
}
