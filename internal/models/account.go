package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a row of the accounts table.
type Account struct {
	AccountID   string `db:"account_id"`
	OwnerUserID string `db:"owner_user_id"`
	BankID      string `db:"bank_id"`
	Status      string `db:"status"`
	AccountType string `db:"account_type"`
	AuditFields
	Balance decimal.Decimal `db:"balance"`
}

// User represents a row of the users table.
type User struct {
	UserID         string `db:"user_id"`
	Name           string `db:"name"`
	PassportNumber string `db:"passport_number"`
	Role           string `db:"role"`
	PasswordHash   string `db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// Bank represents a row of the banks table.
type Bank struct {
	BankID  string `db:"bank_id"`
	Name    string `db:"name"`
	BIC     string `db:"bic"`
	Address string `db:"address"`
	AuditFields
}
