package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanAccountStatus defines the approval state of a loan account.
type LoanAccountStatus string

const (
	LoanOnConsideration LoanAccountStatus = "ON_CONSIDERATION"
	LoanActive          LoanAccountStatus = "ACTIVE"
	LoanCancelled       LoanAccountStatus = "CANCELLED"
	LoanClosed          LoanAccountStatus = "CLOSED"
)

// LoanTransactionKind distinguishes disbursements from repayments.
type LoanTransactionKind string

const (
	LoanCredit  LoanTransactionKind = "CREDIT"
	LoanPayment LoanTransactionKind = "PAYMENT"
)

// Loan holds the terms of a loan product.
type Loan struct {
	LoanID      string          `json:"loanID"` // Primary Key (UUID)
	Amount      decimal.Decimal `json:"amount"`
	TermMonths  int             `json:"termMonths"`
	RatePercent decimal.Decimal `json:"ratePercent"`
	AuditFields
}

// LoanAccount links a Loan to the account it disburses into and the owning user.
// It starts ON_CONSIDERATION and becomes ACTIVE on staff approval, which performs
// the disbursement.
type LoanAccount struct {
	LoanAccountID string            `json:"loanAccountID"` // Primary Key (UUID)
	LoanID        string            `json:"loanID"`
	AccountID     string            `json:"accountID"`
	OwnerUserID   string            `json:"ownerUserID"`
	Status        LoanAccountStatus `json:"status"`
	AuditFields
}

// LoanTransaction records a disbursement (CREDIT) or repayment (PAYMENT) against
// a loan account. Created atomically with the corresponding balance mutation.
type LoanTransaction struct {
	LoanTransactionID string              `json:"loanTransactionID"` // Primary Key (UUID)
	LoanAccountID     string              `json:"loanAccountID"`
	Amount            decimal.Decimal     `json:"amount"`
	Kind              LoanTransactionKind `json:"kind"`
	CreatedAt         time.Time           `json:"createdAt"`
	CreatedBy         string              `json:"createdBy"`
}
