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

// depositService provides the deposit product lifecycle and its money movements.
type depositService struct {
	uow         portsrepo.UnitOfWork
	depositRepo portsrepo.DepositRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	bankRepo    portsrepo.BankRepositoryFacade
}

// NewDepositService creates a new DepositService.
func NewDepositService(uow portsrepo.UnitOfWork, depositRepo portsrepo.DepositRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, bankRepo portsrepo.BankRepositoryFacade) portssvc.DepositSvcFacade {
	return &depositService{
		uow:         uow,
		depositRepo: depositRepo,
		accountRepo: accountRepo,
		bankRepo:    bankRepo,
	}
}

var _ portssvc.DepositSvcFacade = (*depositService)(nil)

// CreateDepositAccount opens a deposit funded from the client's own account.
// The new DEPOSIT-type account, the deposit link, the opening DEPOSIT
// transaction, and the funding-account debit commit in one transaction scope.
func (s *depositService) CreateDepositAccount(ctx context.Context, actor domain.Actor, req dto.CreateDepositAccountRequest) (*domain.DepositAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.InitialAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: initial amount must be positive", apperrors.ErrValidation)
	}
	if req.RatePercent.IsNegative() {
		return nil, fmt.Errorf("%w: deposit rate cannot be negative", apperrors.ErrValidation)
	}
	if _, err := s.bankRepo.FindBankByID(ctx, req.BankID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: actor.UserID,
		BankID:      req.BankID,
		Status:      domain.AccountActive,
		AccountType: domain.AccountDeposit,
		Balance:     decimal.Zero,
		AuditFields: audit,
	}
	deposit := domain.DepositAccount{
		DepositAccountID: uuid.NewString(),
		AccountID:        account.AccountID,
		FundingAccountID: req.FundingAccountID,
		OwnerUserID:      actor.UserID,
		RatePercent:      req.RatePercent,
		Status:           domain.DepositOpen,
		AuditFields:      audit,
	}

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{req.FundingAccountID})
		if err != nil {
			return err
		}
		funding := accounts[req.FundingAccountID]

		if err := Authorize(ActionOwnMoneyMove, actor, funding.OwnerUserID); err != nil {
			return err
		}
		if !funding.IsActive() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, funding.AccountID, funding.Status)
		}
		if funding.Balance.LessThan(req.InitialAmount) {
			return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, funding.AccountID)
		}

		if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
			return err
		}
		if err := s.depositRepo.SaveDepositAccountInTx(ctx, tx, deposit); err != nil {
			return err
		}
		opening := domain.DepositTransaction{
			DepositTransactionID: uuid.NewString(),
			DepositAccountID:     deposit.DepositAccountID,
			Amount:               req.InitialAmount,
			Kind:                 domain.DepositIn,
			CreatedAt:            now,
			CreatedBy:            actor.UserID,
		}
		if err := s.depositRepo.SaveDepositTransactionInTx(ctx, tx, opening); err != nil {
			return err
		}
		changes := map[string]decimal.Decimal{
			req.FundingAccountID: req.InitialAmount.Neg(),
			account.AccountID:    req.InitialAmount,
		}
		return s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, actor.UserID, now)
	})
	if err != nil {
		logger.Warn("Deposit opening failed", slog.String("funding_account_id", req.FundingAccountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Deposit account opened", slog.String("deposit_account_id", deposit.DepositAccountID), slog.String("amount", req.InitialAmount.String()))
	return &deposit, nil
}

// TopUpDeposit moves more money from the funding account into the deposit.
func (s *depositService) TopUpDeposit(ctx context.Context, actor domain.Actor, depositAccountID string, req dto.TopUpDepositRequest) (*domain.DepositTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: top-up amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	var topUp *domain.DepositTransaction

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		deposit, err := s.depositRepo.FindDepositAccountByIDForUpdate(ctx, tx, depositAccountID)
		if err != nil {
			return err
		}
		if err := Authorize(ActionOwnMoneyMove, actor, deposit.OwnerUserID); err != nil {
			return err
		}
		if deposit.IsTerminal() {
			return fmt.Errorf("%w: deposit %s is closed", apperrors.ErrAlreadyTerminal, depositAccountID)
		}

		accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{deposit.FundingAccountID, deposit.AccountID})
		if err != nil {
			return err
		}
		funding := accounts[deposit.FundingAccountID]
		if !funding.IsActive() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, funding.AccountID, funding.Status)
		}
		if funding.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, funding.AccountID)
		}

		txn := domain.DepositTransaction{
			DepositTransactionID: uuid.NewString(),
			DepositAccountID:     depositAccountID,
			Amount:               req.Amount,
			Kind:                 domain.DepositIn,
			CreatedAt:            now,
			CreatedBy:            actor.UserID,
		}
		if err := s.depositRepo.SaveDepositTransactionInTx(ctx, tx, txn); err != nil {
			return err
		}
		changes := map[string]decimal.Decimal{
			deposit.FundingAccountID: req.Amount.Neg(),
			deposit.AccountID:        req.Amount,
		}
		if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, actor.UserID, now); err != nil {
			return err
		}
		topUp = &txn
		return nil
	})
	if err != nil {
		logger.Warn("Deposit top-up failed", slog.String("deposit_account_id", depositAccountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Deposit topped up", slog.String("deposit_account_id", depositAccountID), slog.String("amount", req.Amount.String()))
	return topUp, nil
}

// CloseDeposit pays the full deposit balance out to the destination account,
// records the closing WITHDRAWAL transaction, and blocks both the deposit link
// and its account. A closed deposit cannot be reopened.
func (s *depositService) CloseDeposit(ctx context.Context, actor domain.Actor, depositAccountID string, req dto.CloseDepositRequest) (*domain.DepositAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	var closed *domain.DepositAccount

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		deposit, err := s.depositRepo.FindDepositAccountByIDForUpdate(ctx, tx, depositAccountID)
		if err != nil {
			return err
		}
		if err := Authorize(ActionOwnMoneyMove, actor, deposit.OwnerUserID); err != nil {
			return err
		}
		if deposit.IsTerminal() {
			return fmt.Errorf("%w: deposit %s is closed", apperrors.ErrAlreadyTerminal, depositAccountID)
		}
		if req.DestinationAccountID == deposit.AccountID {
			return fmt.Errorf("%w: cannot pay a deposit out to itself", apperrors.ErrValidation)
		}

		accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{deposit.AccountID, req.DestinationAccountID})
		if err != nil {
			return err
		}
		depositAccount := accounts[deposit.AccountID]
		destination := accounts[req.DestinationAccountID]
		if !destination.IsActive() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, destination.AccountID, destination.Status)
		}

		payout := depositAccount.Balance
		if payout.IsPositive() {
			closing := domain.DepositTransaction{
				DepositTransactionID: uuid.NewString(),
				DepositAccountID:     depositAccountID,
				Amount:               payout,
				Kind:                 domain.DepositOut,
				CreatedAt:            now,
				CreatedBy:            actor.UserID,
			}
			if err := s.depositRepo.SaveDepositTransactionInTx(ctx, tx, closing); err != nil {
				return err
			}
			changes := map[string]decimal.Decimal{
				deposit.AccountID:        payout.Neg(),
				req.DestinationAccountID: payout,
			}
			if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, actor.UserID, now); err != nil {
				return err
			}
		}

		if err := s.accountRepo.UpdateAccountStatusInTx(ctx, tx, deposit.AccountID, domain.AccountBlocked, actor.UserID, now); err != nil {
			return err
		}
		if err := s.depositRepo.UpdateDepositStatusInTx(ctx, tx, depositAccountID, domain.DepositBlocked, actor.UserID, now); err != nil {
			return err
		}

		deposit.Status = domain.DepositBlocked
		deposit.LastUpdatedAt = now
		deposit.LastUpdatedBy = actor.UserID
		closed = deposit
		return nil
	})
	if err != nil {
		logger.Warn("Deposit close failed", slog.String("deposit_account_id", depositAccountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Deposit closed", slog.String("deposit_account_id", depositAccountID))
	return closed, nil
}

// GetDepositAccountByID retrieves a deposit account.
func (s *depositService) GetDepositAccountByID(ctx context.Context, actor domain.Actor, depositAccountID string) (*domain.DepositAccount, error) {
	deposit, err := s.depositRepo.FindDepositAccountByID(ctx, depositAccountID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ActionOwnRead, actor, deposit.OwnerUserID); err != nil {
		return nil, err
	}
	return deposit, nil
}

// ListDepositAccountsByOwner retrieves a user's deposit accounts.
func (s *depositService) ListDepositAccountsByOwner(ctx context.Context, actor domain.Actor, ownerUserID string) ([]domain.DepositAccount, error) {
	if err := Authorize(ActionOwnRead, actor, ownerUserID); err != nil {
		return nil, err
	}
	return s.depositRepo.FindDepositAccountsByOwner(ctx, ownerUserID)
}

// ListDepositTransactions retrieves a deposit account's transaction history.
func (s *depositService) ListDepositTransactions(ctx context.Context, actor domain.Actor, depositAccountID string, limit int, offset int) ([]domain.DepositTransaction, error) {
	deposit, err := s.depositRepo.FindDepositAccountByID(ctx, depositAccountID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ActionOwnRead, actor, deposit.OwnerUserID); err != nil {
		return nil, err
	}
	return s.depositRepo.ListDepositTransactions(ctx, depositAccountID, limit, offset)
}
