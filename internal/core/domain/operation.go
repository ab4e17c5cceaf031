package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationSource identifies the channel a withdrawal or addition came through.
type OperationSource string

const (
	SourceCash     OperationSource = "CASH"
	SourceCard     OperationSource = "CARD"
	SourceATM      OperationSource = "ATM"
	SourceCashbox  OperationSource = "CASHBOX"
	SourceTransfer OperationSource = "TRANSFER"
)

// Withdrawal represents a single committed debit of an account.
type Withdrawal struct {
	WithdrawalID string          `json:"withdrawalID"` // Primary Key (UUID)
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"` // always > 0
	Source       OperationSource `json:"source"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// Addition represents a single committed credit of an account (a deposit of funds).
type Addition struct {
	AdditionID string          `json:"additionID"` // Primary Key (UUID)
	AccountID  string          `json:"accountID"`
	Amount     decimal.Decimal `json:"amount"` // always > 0
	Source     OperationSource `json:"source"`
	CreatedAt  time.Time       `json:"createdAt"`
	CreatedBy  string          `json:"createdBy"`
}
