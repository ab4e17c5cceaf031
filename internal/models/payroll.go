package models

import (
	"github.com/shopspring/decimal"
)

// Enterprise represents a row of the enterprises table.
type Enterprise struct {
	EnterpriseID string `db:"enterprise_id"`
	Name         string `db:"name"`
	TaxNumber    string `db:"tax_number"`
	AccountID    string `db:"account_id"`
	AuditFields
}

// Specialist represents a row of the specialists table.
type Specialist struct {
	SpecialistID string `db:"specialist_id"`
	UserID       string `db:"user_id"`
	EnterpriseID string `db:"enterprise_id"`
	AuditFields
}

// EnterprisePayrollRequest represents a row of the payroll_requests table.
// PassportNumbers is persisted as a text[] column.
type EnterprisePayrollRequest struct {
	RequestID         string          `db:"request_id"`
	EnterpriseID      string          `db:"enterprise_id"`
	SpecialistID      string          `db:"specialist_id"`
	AmountPerEmployee decimal.Decimal `db:"amount_per_employee"`
	PassportNumbers   []string        `db:"passport_numbers"`
	Status            string          `db:"status"`
	AuditFields
}
