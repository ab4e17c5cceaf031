package dto

import (
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDepositAccountRequest defines the data for opening a deposit funded
// from an existing settlement account.
type CreateDepositAccountRequest struct {
	BankID           string          `json:"bankID" binding:"required,uuid"`
	FundingAccountID string          `json:"fundingAccountID" binding:"required,uuid"`
	RatePercent      decimal.Decimal `json:"ratePercent" binding:"required"`
	InitialAmount    decimal.Decimal `json:"initialAmount" binding:"required"`
}

// TopUpDepositRequest defines the data for moving more money into a deposit.
type TopUpDepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CloseDepositRequest defines the data for closing a deposit. The remaining
// balance is paid out to the destination account.
type CloseDepositRequest struct {
	DestinationAccountID string `json:"destinationAccountID" binding:"required,uuid"`
}

// DepositAccountResponse defines the data returned for a deposit account.
type DepositAccountResponse struct {
	DepositAccountID string                      `json:"depositAccountID"`
	AccountID        string                      `json:"accountID"`
	FundingAccountID string                      `json:"fundingAccountID"`
	OwnerUserID      string                      `json:"ownerUserID"`
	RatePercent      decimal.Decimal             `json:"ratePercent"`
	Status           domain.DepositAccountStatus `json:"status"`
	CreatedAt        time.Time                   `json:"createdAt"`
}

// ToDepositAccountResponse converts a domain.DepositAccount to its DTO.
func ToDepositAccountResponse(d *domain.DepositAccount) DepositAccountResponse {
	return DepositAccountResponse{
		DepositAccountID: d.DepositAccountID,
		AccountID:        d.AccountID,
		FundingAccountID: d.FundingAccountID,
		OwnerUserID:      d.OwnerUserID,
		RatePercent:      d.RatePercent,
		Status:           d.Status,
		CreatedAt:        d.CreatedAt,
	}
}

// ToListDepositAccountsResponse converts a slice of deposit accounts.
func ToListDepositAccountsResponse(deposits []domain.DepositAccount) []DepositAccountResponse {
	res := make([]DepositAccountResponse, len(deposits))
	for i := range deposits {
		res[i] = ToDepositAccountResponse(&deposits[i])
	}
	return res
}

// DepositTransactionResponse defines the data returned for a deposit transaction.
type DepositTransactionResponse struct {
	DepositTransactionID string                        `json:"depositTransactionID"`
	DepositAccountID     string                        `json:"depositAccountID"`
	Amount               decimal.Decimal               `json:"amount"`
	Kind                 domain.DepositTransactionKind `json:"kind"`
	CreatedAt            time.Time                     `json:"createdAt"`
}

// ToListDepositTransactionsResponse converts a slice of deposit transactions.
func ToListDepositTransactionsResponse(txns []domain.DepositTransaction) []DepositTransactionResponse {
	res := make([]DepositTransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = DepositTransactionResponse{
			DepositTransactionID: t.DepositTransactionID,
			DepositAccountID:     t.DepositAccountID,
			Amount:               t.Amount,
			Kind:                 t.Kind,
			CreatedAt:            t.CreatedAt,
		}
	}
	return res
}
