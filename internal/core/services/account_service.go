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

// accountService provides account lifecycle and single-account money movements.
type accountService struct {
	uow           portsrepo.UnitOfWork
	accountRepo   portsrepo.AccountRepositoryFacade
	operationRepo portsrepo.OperationRepositoryFacade
	bankRepo      portsrepo.BankRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(uow portsrepo.UnitOfWork, accountRepo portsrepo.AccountRepositoryFacade, operationRepo portsrepo.OperationRepositoryFacade, bankRepo portsrepo.BankRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		uow:           uow,
		accountRepo:   accountRepo,
		operationRepo: operationRepo,
		bankRepo:      bankRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new account for the acting client. Only SETTLEMENT and
// SALARY accounts are opened directly; DEPOSIT, LOAN, and ENTERPRISE accounts
// are created by their respective services.
func (s *accountService) CreateAccount(ctx context.Context, actor domain.Actor, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionOwnMoneyMove, actor, actor.UserID); err != nil {
		return nil, err
	}
	if req.AccountType != domain.AccountSettlement && req.AccountType != domain.AccountSalary {
		return nil, fmt.Errorf("%w: account type %s cannot be opened directly", apperrors.ErrValidation, req.AccountType)
	}
	if _, err := s.bankRepo.FindBankByID(ctx, req.BankID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: actor.UserID,
		BankID:      req.BankID,
		Status:      domain.AccountActive,
		AccountType: req.AccountType,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByID retrieves an account, subject to ownership checks.
func (s *accountService) GetAccountByID(ctx context.Context, actor domain.Actor, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ActionOwnRead, actor, account.OwnerUserID); err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccountsByOwner retrieves all accounts owned by a user.
func (s *accountService) ListAccountsByOwner(ctx context.Context, actor domain.Actor, ownerUserID string) ([]domain.Account, error) {
	if err := Authorize(ActionOwnRead, actor, ownerUserID); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountsByOwner(ctx, ownerUserID)
}

// ListAccounts retrieves a paginated list of all accounts (staff view).
func (s *accountService) ListAccounts(ctx context.Context, actor domain.Actor, limit int, offset int) ([]domain.Account, error) {
	if err := Authorize(ActionStaffList, actor, ""); err != nil {
		return nil, err
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// UpdateAccountStatus transitions an account's status (staff block, freeze,
// unblock). CANCELLED is reached only through DeleteAccount.
func (s *accountService) UpdateAccountStatus(ctx context.Context, actor domain.Actor, accountID string, req dto.UpdateAccountStatusRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionStaffManage, actor, ""); err != nil {
		return nil, err
	}
	if req.Status == domain.AccountCancelled {
		return nil, fmt.Errorf("%w: use account deletion to cancel an account", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Status == domain.AccountCancelled {
		return nil, fmt.Errorf("%w: account %s is cancelled", apperrors.ErrAlreadyTerminal, accountID)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdateAccountStatus(ctx, accountID, req.Status, actor.UserID, now); err != nil {
		return nil, err
	}

	account.Status = req.Status
	account.LastUpdatedAt = now
	account.LastUpdatedBy = actor.UserID
	logger.Info("Account status updated", slog.String("account_id", accountID), slog.String("status", string(req.Status)))
	return account, nil
}

// DeleteAccount cancels an account. Only an account with a zero balance can be
// cancelled; CANCELLED is terminal.
func (s *accountService) DeleteAccount(ctx context.Context, actor domain.Actor, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionStaffManage, actor, ""); err != nil {
		return err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.Status == domain.AccountCancelled {
		return fmt.Errorf("%w: account %s is cancelled", apperrors.ErrAlreadyTerminal, accountID)
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account %s still holds funds", apperrors.ErrValidation, accountID)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdateAccountStatus(ctx, accountID, domain.AccountCancelled, actor.UserID, now); err != nil {
		return err
	}
	logger.Info("Account cancelled", slog.String("account_id", accountID))
	return nil
}

// CreateWithdrawal debits the account and records a Withdrawal in one
// transaction scope. The account row is locked before the balance is read.
func (s *accountService) CreateWithdrawal(ctx context.Context, actor domain.Actor, req dto.CreateWithdrawalRequest) (*domain.Withdrawal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	withdrawal := domain.Withdrawal{
		WithdrawalID: uuid.NewString(),
		AccountID:    req.AccountID,
		Amount:       req.Amount,
		Source:       req.Source,
		CreatedAt:    now,
		CreatedBy:    actor.UserID,
	}

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{req.AccountID})
		if err != nil {
			return err
		}
		account := accounts[req.AccountID]

		if err := Authorize(ActionOwnMoneyMove, actor, account.OwnerUserID); err != nil {
			return err
		}
		if !account.IsActive() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, account.AccountID, account.Status)
		}
		if account.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, account.AccountID)
		}

		if err := s.operationRepo.SaveWithdrawalInTx(ctx, tx, withdrawal); err != nil {
			return err
		}
		changes := map[string]decimal.Decimal{req.AccountID: req.Amount.Neg()}
		return s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, actor.UserID, now)
	})
	if err != nil {
		logger.Warn("Withdrawal failed", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Withdrawal completed", slog.String("withdrawal_id", withdrawal.WithdrawalID), slog.String("amount", req.Amount.String()))
	return &withdrawal, nil
}

// CreateAddition credits the account and records an Addition in one
// transaction scope.
func (s *accountService) CreateAddition(ctx context.Context, actor domain.Actor, req dto.CreateAdditionRequest) (*domain.Addition, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: addition amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	addition := domain.Addition{
		AdditionID: uuid.NewString(),
		AccountID:  req.AccountID,
		Amount:     req.Amount,
		Source:     req.Source,
		CreatedAt:  now,
		CreatedBy:  actor.UserID,
	}

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{req.AccountID})
		if err != nil {
			return err
		}
		account := accounts[req.AccountID]

		if err := Authorize(ActionOwnMoneyMove, actor, account.OwnerUserID); err != nil {
			return err
		}
		if !account.IsActive() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, account.AccountID, account.Status)
		}

		if err := s.operationRepo.SaveAdditionInTx(ctx, tx, addition); err != nil {
			return err
		}
		changes := map[string]decimal.Decimal{req.AccountID: req.Amount}
		return s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, actor.UserID, now)
	})
	if err != nil {
		logger.Warn("Addition failed", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Addition completed", slog.String("addition_id", addition.AdditionID), slog.String("amount", req.Amount.String()))
	return &addition, nil
}

// ListWithdrawals retrieves the withdrawals of an account.
func (s *accountService) ListWithdrawals(ctx context.Context, actor domain.Actor, accountID string, limit int, offset int) ([]domain.Withdrawal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ActionOwnRead, actor, account.OwnerUserID); err != nil {
		return nil, err
	}
	return s.operationRepo.ListWithdrawalsByAccount(ctx, accountID, limit, offset)
}

// ListAdditions retrieves the additions of an account.
func (s *accountService) ListAdditions(ctx context.Context, actor domain.Actor, accountID string, limit int, offset int) ([]domain.Addition, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ActionOwnRead, actor, account.OwnerUserID); err != nil {
		return nil, err
	}
	return s.operationRepo.ListAdditionsByAccount(ctx, accountID, limit, offset)
}
