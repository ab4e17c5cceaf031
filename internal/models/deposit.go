package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositAccount represents a row of the deposit_accounts table.
type DepositAccount struct {
	DepositAccountID string          `db:"deposit_account_id"`
	AccountID        string          `db:"account_id"`
	FundingAccountID string          `db:"funding_account_id"`
	OwnerUserID      string          `db:"owner_user_id"`
	RatePercent      decimal.Decimal `db:"rate_percent"`
	Status           string          `db:"status"`
	AuditFields
}

// DepositTransaction represents a row of the deposit_transactions table.
type DepositTransaction struct {
	DepositTransactionID string          `db:"deposit_transaction_id"`
	DepositAccountID     string          `db:"deposit_account_id"`
	Amount               decimal.Decimal `db:"amount"`
	Kind                 string          `db:"kind"`
	CreatedAt            time.Time       `db:"created_at"`
	CreatedBy            string          `db:"created_by"`
}
