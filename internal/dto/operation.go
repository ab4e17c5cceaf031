package dto

import (
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWithdrawalRequest defines the data for debiting an account.
type CreateWithdrawalRequest struct {
	AccountID string                 `json:"accountID" binding:"required,uuid"`
	Amount    decimal.Decimal        `json:"amount" binding:"required"`
	Source    domain.OperationSource `json:"source" binding:"required,oneof=CASH CARD ATM CASHBOX"`
}

// CreateAdditionRequest defines the data for crediting an account.
type CreateAdditionRequest struct {
	AccountID string                 `json:"accountID" binding:"required,uuid"`
	Amount    decimal.Decimal        `json:"amount" binding:"required"`
	Source    domain.OperationSource `json:"source" binding:"required,oneof=CASH CARD"`
}

// WithdrawalResponse defines the data returned for a withdrawal.
type WithdrawalResponse struct {
	WithdrawalID string                 `json:"withdrawalID"`
	AccountID    string                 `json:"accountID"`
	Amount       decimal.Decimal        `json:"amount"`
	Source       domain.OperationSource `json:"source"`
	CreatedAt    time.Time              `json:"createdAt"`
}

// AdditionResponse defines the data returned for an addition.
type AdditionResponse struct {
	AdditionID string                 `json:"additionID"`
	AccountID  string                 `json:"accountID"`
	Amount     decimal.Decimal        `json:"amount"`
	Source     domain.OperationSource `json:"source"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// ToWithdrawalResponse converts a domain.Withdrawal to its DTO.
func ToWithdrawalResponse(w *domain.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		WithdrawalID: w.WithdrawalID,
		AccountID:    w.AccountID,
		Amount:       w.Amount,
		Source:       w.Source,
		CreatedAt:    w.CreatedAt,
	}
}

// ToAdditionResponse converts a domain.Addition to its DTO.
func ToAdditionResponse(a *domain.Addition) AdditionResponse {
	return AdditionResponse{
		AdditionID: a.AdditionID,
		AccountID:  a.AccountID,
		Amount:     a.Amount,
		Source:     a.Source,
		CreatedAt:  a.CreatedAt,
	}
}

// ToListWithdrawalsResponse converts a slice of withdrawals.
func ToListWithdrawalsResponse(ws []domain.Withdrawal) []WithdrawalResponse {
	res := make([]WithdrawalResponse, len(ws))
	for i := range ws {
		res[i] = ToWithdrawalResponse(&ws[i])
	}
	return res
}

// ToListAdditionsResponse converts a slice of additions.
func ToListAdditionsResponse(as []domain.Addition) []AdditionResponse {
	res := make([]AdditionResponse, len(as))
	for i := range as {
		res[i] = ToAdditionResponse(&as[i])
	}
	return res
}
