package repositories

import (
	"context"
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LoanReader defines read operations for loan data
type LoanReader interface {
	// FindLoanByID retrieves a loan's terms.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindLoanAccountByID retrieves a loan account.
	FindLoanAccountByID(ctx context.Context, loanAccountID string) (*domain.LoanAccount, error)

	// ListLoanAccountsByStatus retrieves loan accounts in a given status (staff review queue).
	ListLoanAccountsByStatus(ctx context.Context, status domain.LoanAccountStatus, limit int, offset int) ([]domain.LoanAccount, error)

	// ListLoanTransactions retrieves the transaction history of a loan account, newest first.
	ListLoanTransactions(ctx context.Context, loanAccountID string, limit int, offset int) ([]domain.LoanTransaction, error)
}

// LoanWriter defines write operations for loan data
type LoanWriter interface {
	// SaveLoanWithAccount persists the loan terms, the pending LOAN-type
	// account, and the linking loan account in a single transaction.
	SaveLoanWithAccount(ctx context.Context, loan domain.Loan, loanAccount domain.LoanAccount, account domain.Account) error
}

// LoanTransactionSupport defines operations that run inside a unit-of-work scope.
type LoanTransactionSupport interface {
	// FindLoanAccountByIDForUpdate retrieves a loan account and locks its row
	// (FOR UPDATE) within a transaction, so approval cannot race a concurrent
	// decision on the same application.
	FindLoanAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, loanAccountID string) (*domain.LoanAccount, error)

	// UpdateLoanAccountStatusInTx transitions a loan account's status within a transaction.
	UpdateLoanAccountStatusInTx(ctx context.Context, tx pgx.Tx, loanAccountID string, status domain.LoanAccountStatus, userID string, now time.Time) error

	// SaveLoanTransactionInTx persists a loan transaction record within a transaction.
	SaveLoanTransactionInTx(ctx context.Context, tx pgx.Tx, loanTxn domain.LoanTransaction) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
	LoanTransactionSupport
}
