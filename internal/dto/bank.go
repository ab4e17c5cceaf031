package dto

import (
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
)

// CreateBankRequest defines the data for registering a bank.
type CreateBankRequest struct {
	Name    string `json:"name" binding:"required"`
	BIC     string `json:"bic" binding:"required,min=8,max=11"`
	Address string `json:"address" binding:"required"`
}

// BankResponse defines the data returned for a bank.
type BankResponse struct {
	BankID    string    `json:"bankID"`
	Name      string    `json:"name"`
	BIC       string    `json:"bic"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToBankResponse converts a domain.Bank to BankResponse DTO
func ToBankResponse(b *domain.Bank) BankResponse {
	return BankResponse{
		BankID:    b.BankID,
		Name:      b.Name,
		BIC:       b.BIC,
		Address:   b.Address,
		CreatedAt: b.CreatedAt,
	}
}

// ToListBanksResponse converts a slice of domain.Bank to BankResponse DTOs
func ToListBanksResponse(banks []domain.Bank) []BankResponse {
	res := make([]BankResponse, len(banks))
	for i := range banks {
		res[i] = ToBankResponse(&banks[i])
	}
	return res
}
