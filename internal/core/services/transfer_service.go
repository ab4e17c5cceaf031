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

// transferService provides the money-moving transfer operations.
type transferService struct {
	uow          portsrepo.UnitOfWork
	transferRepo portsrepo.TransferRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
}

// NewTransferService creates a new TransferService.
func NewTransferService(uow portsrepo.UnitOfWork, transferRepo portsrepo.TransferRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.TransferSvcFacade {
	return &transferService{
		uow:          uow,
		transferRepo: transferRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// CreateTransfer moves req.Amount from the sender to the receiver and records a
// COMPLETED transfer. The debit, the credit, and the transfer row are committed
// in one transaction scope; both account rows are locked before any balance is
// read.
func (s *transferService) CreateTransfer(ctx context.Context, actor domain.Actor, req dto.CreateTransferRequest) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	transfer := domain.Transfer{
		TransferID:    uuid.NewString(),
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Status:        domain.TransferCompleted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{req.FromAccountID, req.ToAccountID})
		if err != nil {
			return err
		}
		from := accounts[req.FromAccountID]
		to := accounts[req.ToAccountID]

		if err := Authorize(ActionOwnMoneyMove, actor, from.OwnerUserID); err != nil {
			return err
		}
		if !from.IsActive() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, from.AccountID, from.Status)
		}
		if !to.IsActive() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, to.AccountID, to.Status)
		}
		if from.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, from.AccountID)
		}

		if err := s.transferRepo.SaveTransferInTx(ctx, tx, transfer); err != nil {
			return err
		}
		changes := map[string]decimal.Decimal{
			req.FromAccountID: req.Amount.Neg(),
			req.ToAccountID:   req.Amount,
		}
		return s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, actor.UserID, now)
	})
	if err != nil {
		logger.Warn("Transfer failed", slog.String("from", req.FromAccountID), slog.String("to", req.ToAccountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transfer completed", slog.String("transfer_id", transfer.TransferID), slog.String("amount", req.Amount.String()))
	return &transfer, nil
}

// ReverseTransfer undoes a completed transfer: moves the money back from the
// receiver to the sender and marks the transfer CANCELED. CANCELED is terminal,
// so a transfer can be reversed at most once. Reversal is a staff operation;
// both accounts must still be ACTIVE or the money would move through a blocked
// or frozen account.
func (s *transferService) ReverseTransfer(ctx context.Context, actor domain.Actor, transferID string) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionStaffManage, actor, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var reversed *domain.Transfer

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		transfer, err := s.transferRepo.FindTransferByIDForUpdate(ctx, tx, transferID)
		if err != nil {
			return err
		}
		if transfer.IsTerminal() {
			return fmt.Errorf("%w: transfer %s is %s", apperrors.ErrAlreadyTerminal, transferID, transfer.Status)
		}

		// Lock both account rows before mutating; the conditional balance
		// update rejects the reversal if the receiver no longer holds the funds.
		accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{transfer.FromAccountID, transfer.ToAccountID})
		if err != nil {
			return err
		}
		from := accounts[transfer.FromAccountID]
		to := accounts[transfer.ToAccountID]
		if !from.IsActive() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, from.AccountID, from.Status)
		}
		if !to.IsActive() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, to.AccountID, to.Status)
		}
		changes := map[string]decimal.Decimal{
			transfer.ToAccountID:   transfer.Amount.Neg(),
			transfer.FromAccountID: transfer.Amount,
		}
		if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, actor.UserID, now); err != nil {
			return err
		}
		if err := s.transferRepo.UpdateTransferStatusInTx(ctx, tx, transferID, domain.TransferCanceled, actor.UserID, now); err != nil {
			return err
		}

		transfer.Status = domain.TransferCanceled
		transfer.LastUpdatedAt = now
		transfer.LastUpdatedBy = actor.UserID
		reversed = transfer
		return nil
	})
	if err != nil {
		logger.Warn("Transfer reversal failed", slog.String("transfer_id", transferID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transfer reversed", slog.String("transfer_id", transferID))
	return reversed, nil
}

// GetTransferByID retrieves a transfer. Clients may only see transfers that
// touch one of their own accounts.
func (s *transferService) GetTransferByID(ctx context.Context, actor domain.Actor, transferID string) (*domain.Transfer, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{transfer.FromAccountID, transfer.ToAccountID})
	if err != nil {
		return nil, err
	}
	authErr := Authorize(ActionOwnRead, actor, accounts[transfer.FromAccountID].OwnerUserID)
	if authErr != nil {
		authErr = Authorize(ActionOwnRead, actor, accounts[transfer.ToAccountID].OwnerUserID)
	}
	if authErr != nil {
		return nil, authErr
	}
	return transfer, nil
}

// ListTransfersByAccount retrieves a token-paginated page of an account's
// transfers, newest first.
func (s *transferService) ListTransfersByAccount(ctx context.Context, actor domain.Actor, accountID string, limit int, nextToken string) ([]domain.Transfer, string, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, "", err
	}
	if err := Authorize(ActionOwnRead, actor, account.OwnerUserID); err != nil {
		return nil, "", err
	}

	var tokenPtr *string
	if nextToken != "" {
		tokenPtr = &nextToken
	}
	transfers, newToken, err := s.transferRepo.ListTransfersByAccount(ctx, accountID, limit, tokenPtr)
	if err != nil {
		return nil, "", err
	}
	var token string
	if newToken != nil {
		token = *newToken
	}
	return transfers, token, nil
}
