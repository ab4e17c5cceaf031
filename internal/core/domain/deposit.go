package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositAccountStatus defines the lifecycle of a deposit product.
// BLOCKED is terminal: a closed deposit cannot be reopened.
type DepositAccountStatus string

const (
	DepositOpen    DepositAccountStatus = "OPEN"
	DepositBlocked DepositAccountStatus = "BLOCKED"
)

// DepositTransactionKind distinguishes top-ups from the closing withdrawal.
type DepositTransactionKind string

const (
	DepositIn  DepositTransactionKind = "DEPOSIT"
	DepositOut DepositTransactionKind = "WITHDRAWAL"
)

// DepositAccount links an interest-bearing DEPOSIT-type account to the
// settlement account that funded it.
type DepositAccount struct {
	DepositAccountID string               `json:"depositAccountID"` // Primary Key (UUID)
	AccountID        string               `json:"accountID"`        // the DEPOSIT-type account
	FundingAccountID string               `json:"fundingAccountID"`
	OwnerUserID      string               `json:"ownerUserID"`
	RatePercent      decimal.Decimal      `json:"ratePercent"`
	Status           DepositAccountStatus `json:"status"`
	AuditFields
}

// IsTerminal reports whether the deposit has been closed.
func (d DepositAccount) IsTerminal() bool {
	return d.Status == DepositBlocked
}

// DepositTransaction records money entering or leaving a deposit account.
type DepositTransaction struct {
	DepositTransactionID string                 `json:"depositTransactionID"` // Primary Key (UUID)
	DepositAccountID     string                 `json:"depositAccountID"`
	Amount               decimal.Decimal        `json:"amount"`
	Kind                 DepositTransactionKind `json:"kind"`
	CreatedAt            time.Time              `json:"createdAt"`
	CreatedBy            string                 `json:"createdBy"`
}
