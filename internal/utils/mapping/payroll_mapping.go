package mapping

import (
	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/models"
)

// ToModelEnterprise converts a domain Enterprise to a model Enterprise
func ToModelEnterprise(d domain.Enterprise) models.Enterprise {
	return models.Enterprise{
		EnterpriseID: d.EnterpriseID,
		Name:         d.Name,
		TaxNumber:    d.TaxNumber,
		AccountID:    d.AccountID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEnterprise converts a model Enterprise to a domain Enterprise
func ToDomainEnterprise(m models.Enterprise) domain.Enterprise {
	return domain.Enterprise{
		EnterpriseID: m.EnterpriseID,
		Name:         m.Name,
		TaxNumber:    m.TaxNumber,
		AccountID:    m.AccountID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSpecialist converts a domain Specialist to a model Specialist
func ToModelSpecialist(d domain.Specialist) models.Specialist {
	return models.Specialist{
		SpecialistID: d.SpecialistID,
		UserID:       d.UserID,
		EnterpriseID: d.EnterpriseID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSpecialist converts a model Specialist to a domain Specialist
func ToDomainSpecialist(m models.Specialist) domain.Specialist {
	return domain.Specialist{
		SpecialistID: m.SpecialistID,
		UserID:       m.UserID,
		EnterpriseID: m.EnterpriseID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayrollRequest converts a domain EnterprisePayrollRequest to its model
func ToModelPayrollRequest(d domain.EnterprisePayrollRequest) models.EnterprisePayrollRequest {
	return models.EnterprisePayrollRequest{
		RequestID:         d.RequestID,
		EnterpriseID:      d.EnterpriseID,
		SpecialistID:      d.SpecialistID,
		AmountPerEmployee: d.AmountPerEmployee,
		PassportNumbers:   d.PassportNumbers,
		Status:            string(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayrollRequest converts a model EnterprisePayrollRequest to its domain form
func ToDomainPayrollRequest(m models.EnterprisePayrollRequest) domain.EnterprisePayrollRequest {
	return domain.EnterprisePayrollRequest{
		RequestID:         m.RequestID,
		EnterpriseID:      m.EnterpriseID,
		SpecialistID:      m.SpecialistID,
		AmountPerEmployee: m.AmountPerEmployee,
		PassportNumbers:   m.PassportNumbers,
		Status:            domain.PayrollRequestStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
