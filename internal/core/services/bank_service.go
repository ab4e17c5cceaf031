package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bankops/backoffice/internal/core/domain"
	portsrepo "github.com/bankops/backoffice/internal/core/ports/repositories"
	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/dto"
	"github.com/bankops/backoffice/internal/middleware"
)

// bankService provides bank registry management. Reads are open to any
// authenticated actor; writes are staff only.
type bankService struct {
	bankRepo portsrepo.BankRepositoryFacade
}

// NewBankService creates a new BankService.
func NewBankService(bankRepo portsrepo.BankRepositoryFacade) portssvc.BankSvcFacade {
	return &bankService{bankRepo: bankRepo}
}

var _ portssvc.BankSvcFacade = (*bankService)(nil)

// CreateBank registers a new bank. Staff only.
func (s *bankService) CreateBank(ctx context.Context, actor domain.Actor, req dto.CreateBankRequest) (*domain.Bank, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionStaffManage, actor, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bank := domain.Bank{
		BankID:  uuid.NewString(),
		Name:    req.Name,
		BIC:     req.BIC,
		Address: req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.bankRepo.SaveBank(ctx, bank); err != nil {
		logger.Error("Failed to save bank", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Bank registered", slog.String("bank_id", bank.BankID), slog.String("bic", bank.BIC))
	return &bank, nil
}

// GetBankByID retrieves a bank.
func (s *bankService) GetBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	return s.bankRepo.FindBankByID(ctx, bankID)
}

// ListBanks retrieves all banks.
func (s *bankService) ListBanks(ctx context.Context, limit int, offset int) ([]domain.Bank, error) {
	return s.bankRepo.ListBanks(ctx, limit, offset)
}

// DeleteBank removes a bank. Staff only; fails with a foreign-key violation
// while accounts still reference it.
func (s *bankService) DeleteBank(ctx context.Context, actor domain.Actor, bankID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionStaffManage, actor, ""); err != nil {
		return err
	}
	if err := s.bankRepo.DeleteBank(ctx, bankID); err != nil {
		logger.Warn("Failed to delete bank", slog.String("bank_id", bankID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Bank deleted", slog.String("bank_id", bankID))
	return nil
}
