package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer represents a row of the transfers table.
type Transfer struct {
	TransferID    string          `db:"transfer_id"`
	FromAccountID string          `db:"from_account_id"`
	ToAccountID   string          `db:"to_account_id"`
	Amount        decimal.Decimal `db:"amount"`
	Status        string          `db:"status"`
	AuditFields
}

// Withdrawal represents a row of the withdrawals table.
type Withdrawal struct {
	WithdrawalID string          `db:"withdrawal_id"`
	AccountID    string          `db:"account_id"`
	Amount       decimal.Decimal `db:"amount"`
	Source       string          `db:"source"`
	CreatedAt    time.Time       `db:"created_at"`
	CreatedBy    string          `db:"created_by"`
}

// Addition represents a row of the additions table.
type Addition struct {
	AdditionID string          `db:"addition_id"`
	AccountID  string          `db:"account_id"`
	Amount     decimal.Decimal `db:"amount"`
	Source     string          `db:"source"`
	CreatedAt  time.Time       `db:"created_at"`
	CreatedBy  string          `db:"created_by"`
}
