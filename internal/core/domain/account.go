package domain

import (
	"github.com/shopspring/decimal"
)

// AccountStatus defines the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive          AccountStatus = "ACTIVE"
	AccountBlocked         AccountStatus = "BLOCKED"
	AccountFrozen          AccountStatus = "FROZEN"
	AccountOnConsideration AccountStatus = "ON_CONSIDERATION"
	AccountCancelled       AccountStatus = "CANCELLED"
)

// AccountType defines the product type of an account.
type AccountType string

const (
	AccountSalary     AccountType = "SALARY"
	AccountDeposit    AccountType = "DEPOSIT"
	AccountSettlement AccountType = "SETTLEMENT"
	AccountLoan       AccountType = "LOAN"
	AccountEnterprise AccountType = "ENTERPRISE"
)

// Account represents a financial account within the core domain.
// Balance is a fixed-point decimal and must stay non-negative after every
// committed operation. Balances are mutated only through the repository's
// balance-update primitives inside a transaction scope, never by direct
// assignment in the service layer.
type Account struct {
	AccountID   string        `json:"accountID"` // Primary Key (UUID)
	OwnerUserID string        `json:"ownerUserID"`
	BankID      string        `json:"bankID"`
	Status      AccountStatus `json:"status"`
	AccountType AccountType   `json:"accountType"`
	AuditFields
	Balance decimal.Decimal `json:"balance"`
}

// IsActive reports whether client-initiated operations may debit or credit the account.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}
