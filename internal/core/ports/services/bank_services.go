package services

import (
	"context"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/dto"
)

// BankSvcFacade defines bank management operations. Writes are staff only;
// deleting a bank that still has accounts fails with a foreign-key violation.
type BankSvcFacade interface {
	// CreateBank registers a new bank.
	CreateBank(ctx context.Context, actor domain.Actor, req dto.CreateBankRequest) (*domain.Bank, error)

	// GetBankByID retrieves a bank.
	GetBankByID(ctx context.Context, bankID string) (*domain.Bank, error)

	// ListBanks retrieves all banks.
	ListBanks(ctx context.Context, limit int, offset int) ([]domain.Bank, error)

	// DeleteBank removes a bank.
	DeleteBank(ctx context.Context, actor domain.Actor, bankID string) error
}
