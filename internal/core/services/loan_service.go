package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bankops/backoffice/internal/apperrors"
	"github.com/bankops/backoffice/internal/core/domain"
	portsrepo "github.com/bankops/backoffice/internal/core/ports/repositories"
	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/dto"
	"github.com/bankops/backoffice/internal/middleware"
)

// loanService provides the loan application lifecycle and its money movements.
type loanService struct {
	uow         portsrepo.UnitOfWork
	loanRepo    portsrepo.LoanRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	bankRepo    portsrepo.BankRepositoryFacade
}

// NewLoanService creates a new LoanService.
func NewLoanService(uow portsrepo.UnitOfWork, loanRepo portsrepo.LoanRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, bankRepo portsrepo.BankRepositoryFacade) portssvc.LoanSvcFacade {
	return &loanService{
		uow:         uow,
		loanRepo:    loanRepo,
		accountRepo: accountRepo,
		bankRepo:    bankRepo,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// RequestLoan creates a loan application: the loan terms, a LOAN-type account
// in ON_CONSIDERATION status with a zero balance, and the linking loan account.
// Nothing is disbursed until staff approval.
func (s *loanService) RequestLoan(ctx context.Context, actor domain.Actor, req dto.RequestLoanRequest) (*domain.LoanAccount, *domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionOwnMoneyMove, actor, actor.UserID); err != nil {
		return nil, nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: loan amount must be positive", apperrors.ErrValidation)
	}
	if req.RatePercent.IsNegative() {
		return nil, nil, fmt.Errorf("%w: loan rate cannot be negative", apperrors.ErrValidation)
	}
	if _, err := s.bankRepo.FindBankByID(ctx, req.BankID); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}
	loan := domain.Loan{
		LoanID:      uuid.NewString(),
		Amount:      req.Amount,
		TermMonths:  req.TermMonths,
		RatePercent: req.RatePercent,
		AuditFields: audit,
	}
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: actor.UserID,
		BankID:      req.BankID,
		Status:      domain.AccountOnConsideration,
		AccountType: domain.AccountLoan,
		Balance:     decimal.Zero,
		AuditFields: audit,
	}
	loanAccount := domain.LoanAccount{
		LoanAccountID: uuid.NewString(),
		LoanID:        loan.LoanID,
		AccountID:     account.AccountID,
		OwnerUserID:   actor.UserID,
		Status:        domain.LoanOnConsideration,
		AuditFields:   audit,
	}

	if err := s.loanRepo.SaveLoanWithAccount(ctx, loan, loanAccount, account); err != nil {
		logger.Error("Failed to save loan application", slog.String("error", err.Error()))
		return nil, nil, err
	}

	logger.Info("Loan requested", slog.String("loan_account_id", loanAccount.LoanAccountID), slog.String("amount", req.Amount.String()))
	return &loanAccount, &loan, nil
}

// ApproveLoan disburses an approved loan: activates the account, credits the
// full loan amount, records a CREDIT loan transaction, and activates the loan
// account, all in one transaction scope. Approving a loan that is no longer
// pending fails.
func (s *loanService) ApproveLoan(ctx context.Context, actor domain.Actor, loanAccountID string) (*domain.LoanAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionStaffManage, actor, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var approved *domain.LoanAccount

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		loanAccount, err := s.loanRepo.FindLoanAccountByIDForUpdate(ctx, tx, loanAccountID)
		if err != nil {
			return err
		}
		if loanAccount.Status != domain.LoanOnConsideration {
			return fmt.Errorf("%w: loan account %s is %s", apperrors.ErrAlreadyTerminal, loanAccountID, loanAccount.Status)
		}
		loan, err := s.loanRepo.FindLoanByID(ctx, loanAccount.LoanID)
		if err != nil {
			return err
		}
		if _, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{loanAccount.AccountID}); err != nil {
			return err
		}

		if err := s.accountRepo.UpdateAccountStatusInTx(ctx, tx, loanAccount.AccountID, domain.AccountActive, actor.UserID, now); err != nil {
			return err
		}
		changes := map[string]decimal.Decimal{loanAccount.AccountID: loan.Amount}
		if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, actor.UserID, now); err != nil {
			return err
		}
		if err := s.loanRepo.UpdateLoanAccountStatusInTx(ctx, tx, loanAccountID, domain.LoanActive, actor.UserID, now); err != nil {
			return err
		}
		credit := domain.LoanTransaction{
			LoanTransactionID: uuid.NewString(),
			LoanAccountID:     loanAccountID,
			Amount:            loan.Amount,
			Kind:              domain.LoanCredit,
			CreatedAt:         now,
			CreatedBy:         actor.UserID,
		}
		if err := s.loanRepo.SaveLoanTransactionInTx(ctx, tx, credit); err != nil {
			return err
		}

		loanAccount.Status = domain.LoanActive
		loanAccount.LastUpdatedAt = now
		loanAccount.LastUpdatedBy = actor.UserID
		approved = loanAccount
		return nil
	})
	if err != nil {
		logger.Warn("Loan approval failed", slog.String("loan_account_id", loanAccountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Loan approved and disbursed", slog.String("loan_account_id", loanAccountID))
	return approved, nil
}

// RejectLoan cancels a pending loan application and its account.
func (s *loanService) RejectLoan(ctx context.Context, actor domain.Actor, loanAccountID string) (*domain.LoanAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionStaffManage, actor, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var rejected *domain.LoanAccount

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		loanAccount, err := s.loanRepo.FindLoanAccountByIDForUpdate(ctx, tx, loanAccountID)
		if err != nil {
			return err
		}
		if loanAccount.Status != domain.LoanOnConsideration {
			return fmt.Errorf("%w: loan account %s is %s", apperrors.ErrAlreadyTerminal, loanAccountID, loanAccount.Status)
		}

		if err := s.loanRepo.UpdateLoanAccountStatusInTx(ctx, tx, loanAccountID, domain.LoanCancelled, actor.UserID, now); err != nil {
			return err
		}
		if err := s.accountRepo.UpdateAccountStatusInTx(ctx, tx, loanAccount.AccountID, domain.AccountCancelled, actor.UserID, now); err != nil {
			return err
		}

		loanAccount.Status = domain.LoanCancelled
		loanAccount.LastUpdatedAt = now
		loanAccount.LastUpdatedBy = actor.UserID
		rejected = loanAccount
		return nil
	})
	if err != nil {
		logger.Warn("Loan rejection failed", slog.String("loan_account_id", loanAccountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Loan rejected", slog.String("loan_account_id", loanAccountID))
	return rejected, nil
}

// CreateLoanPayment debits the loan account and records a PAYMENT loan
// transaction in one transaction scope.
func (s *loanService) CreateLoanPayment(ctx context.Context, actor domain.Actor, loanAccountID string, req dto.CreateLoanPaymentRequest) (*domain.LoanTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	payment := domain.LoanTransaction{
		LoanTransactionID: uuid.NewString(),
		LoanAccountID:     loanAccountID,
		Amount:            req.Amount,
		Kind:              domain.LoanPayment,
		CreatedAt:         now,
		CreatedBy:         actor.UserID,
	}

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		loanAccount, err := s.loanRepo.FindLoanAccountByIDForUpdate(ctx, tx, loanAccountID)
		if err != nil {
			return err
		}
		if err := Authorize(ActionOwnMoneyMove, actor, loanAccount.OwnerUserID); err != nil {
			return err
		}
		if loanAccount.Status != domain.LoanActive {
			return fmt.Errorf("%w: loan account %s is %s", apperrors.ErrValidation, loanAccountID, loanAccount.Status)
		}

		accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{loanAccount.AccountID})
		if err != nil {
			return err
		}
		account := accounts[loanAccount.AccountID]
		if !account.IsActive() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, account.AccountID, account.Status)
		}
		if account.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, account.AccountID)
		}

		if err := s.loanRepo.SaveLoanTransactionInTx(ctx, tx, payment); err != nil {
			return err
		}
		changes := map[string]decimal.Decimal{loanAccount.AccountID: req.Amount.Neg()}
		return s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, actor.UserID, now)
	})
	if err != nil {
		logger.Warn("Loan payment failed", slog.String("loan_account_id", loanAccountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Loan payment recorded", slog.String("loan_transaction_id", payment.LoanTransactionID), slog.String("amount", req.Amount.String()))
	return &payment, nil
}

// GetLoanAccountByID retrieves a loan account together with its loan terms.
func (s *loanService) GetLoanAccountByID(ctx context.Context, actor domain.Actor, loanAccountID string) (*domain.LoanAccount, *domain.Loan, error) {
	loanAccount, err := s.loanRepo.FindLoanAccountByID(ctx, loanAccountID)
	if err != nil {
		return nil, nil, err
	}
	if err := Authorize(ActionOwnRead, actor, loanAccount.OwnerUserID); err != nil {
		return nil, nil, err
	}
	loan, err := s.loanRepo.FindLoanByID(ctx, loanAccount.LoanID)
	if err != nil {
		return nil, nil, err
	}
	return loanAccount, loan, nil
}

// ListLoanAccountsByStatus retrieves the staff review queue.
func (s *loanService) ListLoanAccountsByStatus(ctx context.Context, actor domain.Actor, status domain.LoanAccountStatus, limit int, offset int) ([]domain.LoanAccount, error) {
	if err := Authorize(ActionStaffList, actor, ""); err != nil {
		return nil, err
	}
	return s.loanRepo.ListLoanAccountsByStatus(ctx, status, limit, offset)
}

// ListLoanTransactions retrieves the transaction history of a loan account.
func (s *loanService) ListLoanTransactions(ctx context.Context, actor domain.Actor, loanAccountID string, limit int, offset int) ([]domain.LoanTransaction, error) {
	loanAccount, err := s.loanRepo.FindLoanAccountByID(ctx, loanAccountID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ActionOwnRead, actor, loanAccount.OwnerUserID); err != nil {
		return nil, err
	}
	return s.loanRepo.ListLoanTransactions(ctx, loanAccountID, limit, offset)
}
