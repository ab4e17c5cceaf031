package services

import (
	"context"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/dto"
)

// PayrollReaderSvc defines read operations for enterprise payroll data
type PayrollReaderSvc interface {
	// GetPayrollRequestByID retrieves a payroll request.
	GetPayrollRequestByID(ctx context.Context, actor domain.Actor, requestID string) (*domain.EnterprisePayrollRequest, error)

	// ListPayrollRequestsByStatus retrieves the staff review queue.
	ListPayrollRequestsByStatus(ctx context.Context, actor domain.Actor, status domain.PayrollRequestStatus, limit int, offset int) ([]domain.EnterprisePayrollRequest, error)
}

// PayrollWriterSvc defines the enterprise payroll lifecycle operations
type PayrollWriterSvc interface {
	// CreateEnterprise registers an enterprise and opens its funding account. Staff only.
	CreateEnterprise(ctx context.Context, actor domain.Actor, req dto.CreateEnterpriseRequest) (*domain.Enterprise, error)

	// CreateSpecialist links a SPECIALIST-role user to an enterprise. Staff only.
	CreateSpecialist(ctx context.Context, actor domain.Actor, req dto.CreateSpecialistRequest) (*domain.Specialist, error)

	// CreatePayrollRequest submits a payroll request for the acting specialist's
	// enterprise, in ON_CONSIDERATION status.
	CreatePayrollRequest(ctx context.Context, actor domain.Actor, req dto.CreatePayrollRequestRequest) (*domain.EnterprisePayrollRequest, error)

	// ApprovePayrollRequest approves the request and provisions a SALARY account
	// for every listed passport number that resolves to a registered user. Staff only.
	ApprovePayrollRequest(ctx context.Context, actor domain.Actor, requestID string) (*domain.EnterprisePayrollRequest, error)

	// CancelPayrollRequest rejects a pending request. Staff only.
	CancelPayrollRequest(ctx context.Context, actor domain.Actor, requestID string) (*domain.EnterprisePayrollRequest, error)

	// MakePayrollRequest disburses an approved request: one enterprise-account
	// debit of the full total and a salary-account credit per employee, all in a
	// single atomic scope, then marks the request PAID.
	MakePayrollRequest(ctx context.Context, actor domain.Actor, requestID string) (*domain.EnterprisePayrollRequest, error)
}

// PayrollSvcFacade combines all payroll-related service interfaces
type PayrollSvcFacade interface {
	PayrollReaderSvc
	PayrollWriterSvc
}
