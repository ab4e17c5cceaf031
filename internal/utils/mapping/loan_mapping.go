package mapping

import (
	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:      d.LoanID,
		Amount:      d.Amount,
		TermMonths:  d.TermMonths,
		RatePercent: d.RatePercent,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:      m.LoanID,
		Amount:      m.Amount,
		TermMonths:  m.TermMonths,
		RatePercent: m.RatePercent,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLoanAccount converts a domain LoanAccount to a model LoanAccount
func ToModelLoanAccount(d domain.LoanAccount) models.LoanAccount {
	return models.LoanAccount{
		LoanAccountID: d.LoanAccountID,
		LoanID:        d.LoanID,
		AccountID:     d.AccountID,
		OwnerUserID:   d.OwnerUserID,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoanAccount converts a model LoanAccount to a domain LoanAccount
func ToDomainLoanAccount(m models.LoanAccount) domain.LoanAccount {
	return domain.LoanAccount{
		LoanAccountID: m.LoanAccountID,
		LoanID:        m.LoanID,
		AccountID:     m.AccountID,
		OwnerUserID:   m.OwnerUserID,
		Status:        domain.LoanAccountStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLoanTransaction converts a domain LoanTransaction to a model LoanTransaction
func ToModelLoanTransaction(d domain.LoanTransaction) models.LoanTransaction {
	return models.LoanTransaction{
		LoanTransactionID: d.LoanTransactionID,
		LoanAccountID:     d.LoanAccountID,
		Amount:            d.Amount,
		Kind:              string(d.Kind),
		CreatedAt:         d.CreatedAt,
		CreatedBy:         d.CreatedBy,
	}
}

// ToDomainLoanTransaction converts a model LoanTransaction to a domain LoanTransaction
func ToDomainLoanTransaction(m models.LoanTransaction) domain.LoanTransaction {
	return domain.LoanTransaction{
		LoanTransactionID: m.LoanTransactionID,
		LoanAccountID:     m.LoanAccountID,
		Amount:            m.Amount,
		Kind:              domain.LoanTransactionKind(m.Kind),
		CreatedAt:         m.CreatedAt,
		CreatedBy:         m.CreatedBy,
	}
}
