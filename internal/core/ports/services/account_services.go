package services

import (
	"context"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account, subject to ownership checks.
	GetAccountByID(ctx context.Context, actor domain.Actor, accountID string) (*domain.Account, error)

	// ListAccountsByOwner retrieves all accounts owned by a user.
	ListAccountsByOwner(ctx context.Context, actor domain.Actor, ownerUserID string) ([]domain.Account, error)

	// ListAccounts retrieves a paginated list of all accounts (staff view).
	ListAccounts(ctx context.Context, actor domain.Actor, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens a new account for the acting client.
	CreateAccount(ctx context.Context, actor domain.Actor, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccountStatus transitions an account's status (staff block/freeze/unblock).
	UpdateAccountStatus(ctx context.Context, actor domain.Actor, accountID string, req dto.UpdateAccountStatusRequest) (*domain.Account, error)

	// DeleteAccount cancels an account (staff only). The account must be empty.
	DeleteAccount(ctx context.Context, actor domain.Actor, accountID string) error
}

// OperationSvc defines the cash-style single-account money movements.
type OperationSvc interface {
	// CreateWithdrawal debits the account and records a Withdrawal, atomically.
	CreateWithdrawal(ctx context.Context, actor domain.Actor, req dto.CreateWithdrawalRequest) (*domain.Withdrawal, error)

	// CreateAddition credits the account and records an Addition, atomically.
	CreateAddition(ctx context.Context, actor domain.Actor, req dto.CreateAdditionRequest) (*domain.Addition, error)

	// ListWithdrawals retrieves the withdrawals of an account.
	ListWithdrawals(ctx context.Context, actor domain.Actor, accountID string, limit int, offset int) ([]domain.Withdrawal, error)

	// ListAdditions retrieves the additions of an account.
	ListAdditions(ctx context.Context, actor domain.Actor, accountID string, limit int, offset int) ([]domain.Addition, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	OperationSvc
}
