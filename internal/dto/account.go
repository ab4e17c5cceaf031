package dto

import (
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	BankID      string             `json:"bankID" binding:"required,uuid"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=SALARY DEPOSIT SETTLEMENT LOAN ENTERPRISE"`
}

// UpdateAccountStatusRequest defines the data for a staff status transition
// (block, freeze, unblock).
type UpdateAccountStatusRequest struct {
	Status domain.AccountStatus `json:"status" binding:"required,oneof=ACTIVE BLOCKED FROZEN CANCELLED"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string               `json:"accountID"`
	OwnerUserID   string               `json:"ownerUserID"`
	BankID        string               `json:"bankID"`
	Status        domain.AccountStatus `json:"status"`
	AccountType   domain.AccountType   `json:"accountType"`
	Balance       decimal.Decimal      `json:"balance"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		OwnerUserID:   acc.OwnerUserID,
		BankID:        acc.BankID,
		Status:        acc.Status,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
