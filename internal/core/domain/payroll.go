package domain

import (
	"github.com/shopspring/decimal"
)

// PayrollRequestStatus defines the state machine of an enterprise payroll request.
// ON_CONSIDERATION -> APPROVED | CANCELLED (staff decision);
// APPROVED -> PAID when the disbursement runs. PAID and CANCELLED are terminal,
// which prevents a request from being disbursed twice.
type PayrollRequestStatus string

const (
	PayrollOnConsideration PayrollRequestStatus = "ON_CONSIDERATION"
	PayrollApproved        PayrollRequestStatus = "APPROVED"
	PayrollCancelled       PayrollRequestStatus = "CANCELLED"
	PayrollPaid            PayrollRequestStatus = "PAID"
)

// Enterprise represents a company served by the bank. Its ENTERPRISE-type
// account funds payroll disbursements.
type Enterprise struct {
	EnterpriseID string `json:"enterpriseID"` // Primary Key (UUID)
	Name         string `json:"name"`
	TaxNumber    string `json:"taxNumber"` // unique
	AccountID    string `json:"accountID"` // ENTERPRISE-type account
	AuditFields
}

// Specialist links a SPECIALIST-role user to the enterprise they act for.
type Specialist struct {
	SpecialistID string `json:"specialistID"` // Primary Key (UUID)
	UserID       string `json:"userID"`
	EnterpriseID string `json:"enterpriseID"`
	AuditFields
}

// EnterprisePayrollRequest asks the bank to open salary accounts for the listed
// passport numbers and later disburse AmountPerEmployee to each of them.
type EnterprisePayrollRequest struct {
	RequestID         string               `json:"requestID"` // Primary Key (UUID)
	EnterpriseID      string               `json:"enterpriseID"`
	SpecialistID      string               `json:"specialistID"`
	AmountPerEmployee decimal.Decimal      `json:"amountPerEmployee"`
	PassportNumbers   []string             `json:"passportNumbers"`
	Status            PayrollRequestStatus `json:"status"`
	AuditFields
}

// IsTerminal reports whether the request can no longer transition.
func (r EnterprisePayrollRequest) IsTerminal() bool {
	return r.Status == PayrollPaid || r.Status == PayrollCancelled
}

// TotalAmount is the full payroll cost: amount per employee times employee count.
func (r EnterprisePayrollRequest) TotalAmount() decimal.Decimal {
	return r.AmountPerEmployee.Mul(decimal.NewFromInt(int64(len(r.PassportNumbers))))
}
