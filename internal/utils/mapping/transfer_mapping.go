package mapping

import (
	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/models"
)

// ToModelTransfer converts a domain Transfer to a model Transfer
func ToModelTransfer(d domain.Transfer) models.Transfer {
	return models.Transfer{
		TransferID:    d.TransferID,
		FromAccountID: d.FromAccountID,
		ToAccountID:   d.ToAccountID,
		Amount:        d.Amount,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransfer converts a model Transfer to a domain Transfer
func ToDomainTransfer(m models.Transfer) domain.Transfer {
	return domain.Transfer{
		TransferID:    m.TransferID,
		FromAccountID: m.FromAccountID,
		ToAccountID:   m.ToAccountID,
		Amount:        m.Amount,
		Status:        domain.TransferStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelWithdrawal converts a domain Withdrawal to a model Withdrawal
func ToModelWithdrawal(d domain.Withdrawal) models.Withdrawal {
	return models.Withdrawal{
		WithdrawalID: d.WithdrawalID,
		AccountID:    d.AccountID,
		Amount:       d.Amount,
		Source:       string(d.Source),
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
	}
}

// ToDomainWithdrawal converts a model Withdrawal to a domain Withdrawal
func ToDomainWithdrawal(m models.Withdrawal) domain.Withdrawal {
	return domain.Withdrawal{
		WithdrawalID: m.WithdrawalID,
		AccountID:    m.AccountID,
		Amount:       m.Amount,
		Source:       domain.OperationSource(m.Source),
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}

// ToModelAddition converts a domain Addition to a model Addition
func ToModelAddition(d domain.Addition) models.Addition {
	return models.Addition{
		AdditionID: d.AdditionID,
		AccountID:  d.AccountID,
		Amount:     d.Amount,
		Source:     string(d.Source),
		CreatedAt:  d.CreatedAt,
		CreatedBy:  d.CreatedBy,
	}
}

// ToDomainAddition converts a model Addition to a domain Addition
func ToDomainAddition(m models.Addition) domain.Addition {
	return domain.Addition{
		AdditionID: m.AdditionID,
		AccountID:  m.AccountID,
		Amount:     m.Amount,
		Source:     domain.OperationSource(m.Source),
		CreatedAt:  m.CreatedAt,
		CreatedBy:  m.CreatedBy,
	}
}
