package services

import (
	"context"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/dto"
)

// LoanReaderSvc defines read operations for loan data
type LoanReaderSvc interface {
	// GetLoanAccountByID retrieves a loan account with its loan terms.
	GetLoanAccountByID(ctx context.Context, actor domain.Actor, loanAccountID string) (*domain.LoanAccount, *domain.Loan, error)

	// ListLoanAccountsByStatus retrieves loan accounts awaiting review (staff queue).
	ListLoanAccountsByStatus(ctx context.Context, actor domain.Actor, status domain.LoanAccountStatus, limit int, offset int) ([]domain.LoanAccount, error)

	// ListLoanTransactions retrieves the transaction history of a loan account.
	ListLoanTransactions(ctx context.Context, actor domain.Actor, loanAccountID string, limit int, offset int) ([]domain.LoanTransaction, error)
}

// LoanWriterSvc defines the loan lifecycle operations
type LoanWriterSvc interface {
	// RequestLoan creates a Loan, a pending LOAN-type account, and the linking
	// LoanAccount in ON_CONSIDERATION status.
	RequestLoan(ctx context.Context, actor domain.Actor, req dto.RequestLoanRequest) (*domain.LoanAccount, *domain.Loan, error)

	// ApproveLoan disburses the loan: credits the account, activates it, and
	// records a CREDIT loan transaction, atomically. Staff only.
	ApproveLoan(ctx context.Context, actor domain.Actor, loanAccountID string) (*domain.LoanAccount, error)

	// RejectLoan cancels a pending loan application. Staff only.
	RejectLoan(ctx context.Context, actor domain.Actor, loanAccountID string) (*domain.LoanAccount, error)

	// CreateLoanPayment debits the loan account and records a PAYMENT loan
	// transaction, atomically.
	CreateLoanPayment(ctx context.Context, actor domain.Actor, loanAccountID string, req dto.CreateLoanPaymentRequest) (*domain.LoanTransaction, error)
}

// LoanSvcFacade combines all loan-related service interfaces
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
}
