package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan represents a row of the loans table.
type Loan struct {
	LoanID      string          `db:"loan_id"`
	Amount      decimal.Decimal `db:"amount"`
	TermMonths  int             `db:"term_months"`
	RatePercent decimal.Decimal `db:"rate_percent"`
	AuditFields
}

// LoanAccount represents a row of the loan_accounts table.
type LoanAccount struct {
	LoanAccountID string `db:"loan_account_id"`
	LoanID        string `db:"loan_id"`
	AccountID     string `db:"account_id"`
	OwnerUserID   string `db:"owner_user_id"`
	Status        string `db:"status"`
	AuditFields
}

// LoanTransaction represents a row of the loan_transactions table.
type LoanTransaction struct {
	LoanTransactionID string          `db:"loan_transaction_id"`
	LoanAccountID     string          `db:"loan_account_id"`
	Amount            decimal.Decimal `db:"amount"`
	Kind              string          `db:"kind"`
	CreatedAt         time.Time       `db:"created_at"`
	CreatedBy         string          `db:"created_by"`
}
