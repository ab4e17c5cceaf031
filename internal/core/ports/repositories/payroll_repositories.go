package repositories

import (
	"context"
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// EnterpriseReader defines read operations for enterprise and specialist data
type EnterpriseReader interface {
	// FindEnterpriseByID retrieves an enterprise.
	FindEnterpriseByID(ctx context.Context, enterpriseID string) (*domain.Enterprise, error)

	// FindSpecialistByID retrieves a specialist record.
	FindSpecialistByID(ctx context.Context, specialistID string) (*domain.Specialist, error)

	// FindSpecialistByUserID retrieves the specialist record belonging to a user.
	FindSpecialistByUserID(ctx context.Context, userID string) (*domain.Specialist, error)
}

// EnterpriseWriter defines write operations for enterprise data
type EnterpriseWriter interface {
	// SaveEnterpriseInTx persists a new enterprise within a transaction,
	// alongside the funding account it is created with.
	SaveEnterpriseInTx(ctx context.Context, tx pgx.Tx, enterprise domain.Enterprise) error

	// SaveSpecialist persists a new specialist link.
	SaveSpecialist(ctx context.Context, specialist domain.Specialist) error
}

// PayrollRequestReader defines read operations for payroll requests
type PayrollRequestReader interface {
	// FindPayrollRequestByID retrieves a payroll request.
	FindPayrollRequestByID(ctx context.Context, requestID string) (*domain.EnterprisePayrollRequest, error)

	// ListPayrollRequestsByStatus retrieves payroll requests in a given status (staff review queue).
	ListPayrollRequestsByStatus(ctx context.Context, status domain.PayrollRequestStatus, limit int, offset int) ([]domain.EnterprisePayrollRequest, error)
}

// PayrollRequestWriter defines write operations for payroll requests
type PayrollRequestWriter interface {
	// SavePayrollRequest persists a new payroll request.
	SavePayrollRequest(ctx context.Context, request domain.EnterprisePayrollRequest) error

	// UpdatePayrollRequestStatus transitions a payroll request's status.
	UpdatePayrollRequestStatus(ctx context.Context, requestID string, status domain.PayrollRequestStatus, userID string, now time.Time) error
}

// PayrollTransactionSupport defines operations that run inside a unit-of-work scope.
type PayrollTransactionSupport interface {
	// FindPayrollRequestByIDForUpdate retrieves a payroll request and locks its
	// row (FOR UPDATE) within a transaction, so the status check cannot race a
	// concurrent disbursement of the same request.
	FindPayrollRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.EnterprisePayrollRequest, error)

	// UpdatePayrollRequestStatusInTx transitions a payroll request's status within a transaction.
	UpdatePayrollRequestStatusInTx(ctx context.Context, tx pgx.Tx, requestID string, status domain.PayrollRequestStatus, userID string, now time.Time) error
}

// PayrollRepositoryFacade combines enterprise and payroll repository interfaces
type PayrollRepositoryFacade interface {
	EnterpriseReader
	EnterpriseWriter
	PayrollRequestReader
	PayrollRequestWriter
	PayrollTransactionSupport
}
