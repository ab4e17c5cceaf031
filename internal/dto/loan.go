package dto

import (
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RequestLoanRequest defines the data a client submits to apply for a loan.
type RequestLoanRequest struct {
	BankID      string          `json:"bankID" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	TermMonths  int             `json:"termMonths" binding:"required,min=1,max=360"`
	RatePercent decimal.Decimal `json:"ratePercent" binding:"required"`
}

// CreateLoanPaymentRequest defines the data for repaying against a loan account.
type CreateLoanPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// LoanAccountResponse defines the data returned for a loan account, joined with
// the loan terms it was opened under.
type LoanAccountResponse struct {
	LoanAccountID string                   `json:"loanAccountID"`
	LoanID        string                   `json:"loanID"`
	AccountID     string                   `json:"accountID"`
	OwnerUserID   string                   `json:"ownerUserID"`
	Status        domain.LoanAccountStatus `json:"status"`
	Amount        decimal.Decimal          `json:"amount"`
	TermMonths    int                      `json:"termMonths"`
	RatePercent   decimal.Decimal          `json:"ratePercent"`
	CreatedAt     time.Time                `json:"createdAt"`
}

// ToLoanAccountResponse converts a loan account and its loan terms to a DTO.
func ToLoanAccountResponse(la *domain.LoanAccount, loan *domain.Loan) LoanAccountResponse {
	return LoanAccountResponse{
		LoanAccountID: la.LoanAccountID,
		LoanID:        la.LoanID,
		AccountID:     la.AccountID,
		OwnerUserID:   la.OwnerUserID,
		Status:        la.Status,
		Amount:        loan.Amount,
		TermMonths:    loan.TermMonths,
		RatePercent:   loan.RatePercent,
		CreatedAt:     la.CreatedAt,
	}
}

// LoanTransactionResponse defines the data returned for a loan transaction.
type LoanTransactionResponse struct {
	LoanTransactionID string                     `json:"loanTransactionID"`
	LoanAccountID     string                     `json:"loanAccountID"`
	Amount            decimal.Decimal            `json:"amount"`
	Kind              domain.LoanTransactionKind `json:"kind"`
	CreatedAt         time.Time                  `json:"createdAt"`
}

// ToListLoanTransactionsResponse converts a slice of loan transactions.
func ToListLoanTransactionsResponse(txns []domain.LoanTransaction) []LoanTransactionResponse {
	res := make([]LoanTransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = LoanTransactionResponse{
			LoanTransactionID: t.LoanTransactionID,
			LoanAccountID:     t.LoanAccountID,
			Amount:            t.Amount,
			Kind:              t.Kind,
			CreatedAt:         t.CreatedAt,
		}
	}
	return res
}
