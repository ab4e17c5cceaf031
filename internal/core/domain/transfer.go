package domain

import (
	"github.com/shopspring/decimal"
)

// TransferStatus defines the state of a transfer.
// COMPLETED -> CANCELED is the only transition; CANCELED is terminal.
type TransferStatus string

const (
	TransferCompleted TransferStatus = "COMPLETED"
	TransferCanceled  TransferStatus = "CANCELED"
)

// Transfer represents a committed movement of money between two accounts.
// It is created atomically with the paired debit/credit of the two balances.
type Transfer struct {
	TransferID    string          `json:"transferID"` // Primary Key (UUID)
	FromAccountID string          `json:"fromAccountID"`
	ToAccountID   string          `json:"toAccountID"`
	Amount        decimal.Decimal `json:"amount"` // always > 0
	Status        TransferStatus  `json:"status"`
	AuditFields
}

// IsTerminal reports whether the transfer can no longer transition.
func (t Transfer) IsTerminal() bool {
	return t.Status == TransferCanceled
}
