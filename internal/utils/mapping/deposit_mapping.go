package mapping

import (
	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/models"
)

// ToModelDepositAccount converts a domain DepositAccount to a model DepositAccount
func ToModelDepositAccount(d domain.DepositAccount) models.DepositAccount {
	return models.DepositAccount{
		DepositAccountID: d.DepositAccountID,
		AccountID:        d.AccountID,
		FundingAccountID: d.FundingAccountID,
		OwnerUserID:      d.OwnerUserID,
		RatePercent:      d.RatePercent,
		Status:           string(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDepositAccount converts a model DepositAccount to a domain DepositAccount
func ToDomainDepositAccount(m models.DepositAccount) domain.DepositAccount {
	return domain.DepositAccount{
		DepositAccountID: m.DepositAccountID,
		AccountID:        m.AccountID,
		FundingAccountID: m.FundingAccountID,
		OwnerUserID:      m.OwnerUserID,
		RatePercent:      m.RatePercent,
		Status:           domain.DepositAccountStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelDepositTransaction converts a domain DepositTransaction to a model DepositTransaction
func ToModelDepositTransaction(d domain.DepositTransaction) models.DepositTransaction {
	return models.DepositTransaction{
		DepositTransactionID: d.DepositTransactionID,
		DepositAccountID:     d.DepositAccountID,
		Amount:               d.Amount,
		Kind:                 string(d.Kind),
		CreatedAt:            d.CreatedAt,
		CreatedBy:            d.CreatedBy,
	}
}

// ToDomainDepositTransaction converts a model DepositTransaction to a domain DepositTransaction
func ToDomainDepositTransaction(m models.DepositTransaction) domain.DepositTransaction {
	return domain.DepositTransaction{
		DepositTransactionID: m.DepositTransactionID,
		DepositAccountID:     m.DepositAccountID,
		Amount:               m.Amount,
		Kind:                 domain.DepositTransactionKind(m.Kind),
		CreatedAt:            m.CreatedAt,
		CreatedBy:            m.CreatedBy,
	}
}
