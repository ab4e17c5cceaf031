package repositories

import (
	"context"

	"github.com/bankops/backoffice/internal/core/domain"
)

// BankRepositoryFacade defines persistence operations for banks.
type BankRepositoryFacade interface {
	// SaveBank persists a new bank.
	SaveBank(ctx context.Context, bank domain.Bank) error

	// FindBankByID retrieves a bank.
	FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error)

	// ListBanks retrieves all banks.
	ListBanks(ctx context.Context, limit int, offset int) ([]domain.Bank, error)

	// DeleteBank removes a bank. Fails with a foreign-key violation while
	// accounts still reference it.
	DeleteBank(ctx context.Context, bankID string) error
}
