package dto

import (
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEnterpriseRequest defines the data for registering an enterprise and
// its funding account.
type CreateEnterpriseRequest struct {
	Name      string `json:"name" binding:"required"`
	TaxNumber string `json:"taxNumber" binding:"required"`
	BankID    string `json:"bankID" binding:"required,uuid"`
}

// CreateSpecialistRequest links an existing SPECIALIST-role user to an enterprise.
type CreateSpecialistRequest struct {
	UserID       string `json:"userID" binding:"required,uuid"`
	EnterpriseID string `json:"enterpriseID" binding:"required,uuid"`
}

// CreatePayrollRequestRequest defines the data a specialist submits to request
// payroll for the listed employees.
type CreatePayrollRequestRequest struct {
	AmountPerEmployee decimal.Decimal `json:"amountPerEmployee" binding:"required"`
	PassportNumbers   []string        `json:"passportNumbers" binding:"required,min=1,dive,required"`
}

// EnterpriseResponse defines the data returned for an enterprise.
type EnterpriseResponse struct {
	EnterpriseID string    `json:"enterpriseID"`
	Name         string    `json:"name"`
	TaxNumber    string    `json:"taxNumber"`
	AccountID    string    `json:"accountID"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToEnterpriseResponse converts a domain.Enterprise to its DTO.
func ToEnterpriseResponse(e *domain.Enterprise) EnterpriseResponse {
	return EnterpriseResponse{
		EnterpriseID: e.EnterpriseID,
		Name:         e.Name,
		TaxNumber:    e.TaxNumber,
		AccountID:    e.AccountID,
		CreatedAt:    e.CreatedAt,
	}
}

// SpecialistResponse defines the data returned for a specialist link.
type SpecialistResponse struct {
	SpecialistID string    `json:"specialistID"`
	UserID       string    `json:"userID"`
	EnterpriseID string    `json:"enterpriseID"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToSpecialistResponse converts a domain.Specialist to its DTO.
func ToSpecialistResponse(s *domain.Specialist) SpecialistResponse {
	return SpecialistResponse{
		SpecialistID: s.SpecialistID,
		UserID:       s.UserID,
		EnterpriseID: s.EnterpriseID,
		CreatedAt:    s.CreatedAt,
	}
}

// PayrollRequestResponse defines the data returned for a payroll request.
type PayrollRequestResponse struct {
	RequestID         string                      `json:"requestID"`
	EnterpriseID      string                      `json:"enterpriseID"`
	SpecialistID      string                      `json:"specialistID"`
	AmountPerEmployee decimal.Decimal             `json:"amountPerEmployee"`
	PassportNumbers   []string                    `json:"passportNumbers"`
	Status            domain.PayrollRequestStatus `json:"status"`
	TotalAmount       decimal.Decimal             `json:"totalAmount"`
	CreatedAt         time.Time                   `json:"createdAt"`
}

// ToPayrollRequestResponse converts a domain payroll request to its DTO.
func ToPayrollRequestResponse(r *domain.EnterprisePayrollRequest) PayrollRequestResponse {
	return PayrollRequestResponse{
		RequestID:         r.RequestID,
		EnterpriseID:      r.EnterpriseID,
		SpecialistID:      r.SpecialistID,
		AmountPerEmployee: r.AmountPerEmployee,
		PassportNumbers:   r.PassportNumbers,
		Status:            r.Status,
		TotalAmount:       r.TotalAmount(),
		CreatedAt:         r.CreatedAt,
	}
}

// ToListPayrollRequestsResponse converts a slice of payroll requests.
func ToListPayrollRequestsResponse(reqs []domain.EnterprisePayrollRequest) []PayrollRequestResponse {
	res := make([]PayrollRequestResponse, len(reqs))
	for i := range reqs {
		res[i] = ToPayrollRequestResponse(&reqs[i])
	}
	return res
}
