package mapping

import (
	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		OwnerUserID: d.OwnerUserID,
		BankID:      d.BankID,
		Status:      string(d.Status),
		AccountType: string(d.AccountType),
		AuditFields: ToModelAuditFields(d.AuditFields),
		Balance:     d.Balance,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		OwnerUserID: m.OwnerUserID,
		BankID:      m.BankID,
		Status:      domain.AccountStatus(m.Status),
		AccountType: domain.AccountType(m.AccountType),
		AuditFields: ToDomainAuditFields(m.AuditFields),
		Balance:     m.Balance,
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
