package repositories

import (
	"context"
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountsByOwner retrieves all accounts belonging to a user.
	FindAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error)

	// FindSalaryAccountsByOwners retrieves the SALARY-type account of each listed owner.
	FindSalaryAccountsByOwners(ctx context.Context, ownerUserIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of all accounts (staff view).
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountStatus transitions an account's lifecycle status.
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations that run inside a unit-of-work scope.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows (FOR UPDATE)
	// within a transaction. IDs are locked in sorted order to avoid deadlocks.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies balance deltas to multiple accounts within a transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error

	// UpdateAccountStatusInTx transitions an account's status within a transaction.
	UpdateAccountStatusInTx(ctx context.Context, tx pgx.Tx, accountID string, status domain.AccountStatus, userID string, now time.Time) error

	// SaveAccountInTx persists a new account within a transaction.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
