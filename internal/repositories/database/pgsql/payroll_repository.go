package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bankops/backoffice/internal/apperrors"
	"github.com/bankops/backoffice/internal/core/domain"
	portsrepo "github.com/bankops/backoffice/internal/core/ports/repositories"
	"github.com/bankops/backoffice/internal/models"
	"github.com/bankops/backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxPayrollRepository implements enterprise and payroll persistence using pgx.
type PgxPayrollRepository struct {
	*BaseRepository
}

func newPgxPayrollRepository(base *BaseRepository) *PgxPayrollRepository {
	return &PgxPayrollRepository{BaseRepository: base}
}

var _ portsrepo.PayrollRepositoryFacade = (*PgxPayrollRepository)(nil)

// FindEnterpriseByID retrieves an enterprise.
func (r *PgxPayrollRepository) FindEnterpriseByID(ctx context.Context, enterpriseID string) (*domain.Enterprise, error) {
	query := `
		SELECT enterprise_id, name, tax_number, account_id, created_at, created_by, last_updated_at, last_updated_by
		FROM enterprises WHERE enterprise_id = $1;
	`
	var m models.Enterprise
	err := r.Pool.QueryRow(ctx, query, enterpriseID).Scan(
		&m.EnterpriseID, &m.Name, &m.TaxNumber, &m.AccountID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: enterprise %s", apperrors.ErrNotFound, enterpriseID)
		}
		return nil, apperrors.NewAppError(500, "failed to find enterprise "+enterpriseID, err)
	}
	e := mapping.ToDomainEnterprise(m)
	return &e, nil
}

// SaveEnterpriseInTx persists a new enterprise within an open transaction.
func (r *PgxPayrollRepository) SaveEnterpriseInTx(ctx context.Context, tx pgx.Tx, enterprise domain.Enterprise) error {
	m := mapping.ToModelEnterprise(enterprise)
	query := `
		INSERT INTO enterprises (enterprise_id, name, tax_number, account_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		m.EnterpriseID, m.Name, m.TaxNumber, m.AccountID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateConstraint("enterprise", err)
	}
	return nil
}

const specialistColumns = `specialist_id, user_id, enterprise_id, created_at, created_by, last_updated_at, last_updated_by`

func scanSpecialistRow(row pgx.Row) (*models.Specialist, error) {
	var m models.Specialist
	err := row.Scan(
		&m.SpecialistID, &m.UserID, &m.EnterpriseID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindSpecialistByID retrieves a specialist record.
func (r *PgxPayrollRepository) FindSpecialistByID(ctx context.Context, specialistID string) (*domain.Specialist, error) {
	query := `SELECT ` + specialistColumns + ` FROM specialists WHERE specialist_id = $1;`
	m, err := scanSpecialistRow(r.Pool.QueryRow(ctx, query, specialistID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: specialist %s", apperrors.ErrNotFound, specialistID)
		}
		return nil, apperrors.NewAppError(500, "failed to find specialist "+specialistID, err)
	}
	s := mapping.ToDomainSpecialist(*m)
	return &s, nil
}

// FindSpecialistByUserID retrieves the specialist record belonging to a user.
func (r *PgxPayrollRepository) FindSpecialistByUserID(ctx context.Context, userID string) (*domain.Specialist, error) {
	query := `SELECT ` + specialistColumns + ` FROM specialists WHERE user_id = $1;`
	m, err := scanSpecialistRow(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: specialist for user %s", apperrors.ErrNotFound, userID)
		}
		return nil, apperrors.NewAppError(500, "failed to find specialist for user "+userID, err)
	}
	s := mapping.ToDomainSpecialist(*m)
	return &s, nil
}

// SaveSpecialist persists a new specialist link.
func (r *PgxPayrollRepository) SaveSpecialist(ctx context.Context, specialist domain.Specialist) error {
	m := mapping.ToModelSpecialist(specialist)
	query := `
		INSERT INTO specialists (specialist_id, user_id, enterprise_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SpecialistID, m.UserID, m.EnterpriseID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateConstraint("specialist", err)
	}
	return nil
}

const payrollColumns = `request_id, enterprise_id, specialist_id, amount_per_employee, passport_numbers, status, created_at, created_by, last_updated_at, last_updated_by`

func scanPayrollRow(row pgx.Row) (*models.EnterprisePayrollRequest, error) {
	var m models.EnterprisePayrollRequest
	err := row.Scan(
		&m.RequestID, &m.EnterpriseID, &m.SpecialistID, &m.AmountPerEmployee,
		&m.PassportNumbers, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindPayrollRequestByID retrieves a payroll request.
func (r *PgxPayrollRepository) FindPayrollRequestByID(ctx context.Context, requestID string) (*domain.EnterprisePayrollRequest, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_requests WHERE request_id = $1;`
	m, err := scanPayrollRow(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payroll request %s", apperrors.ErrNotFound, requestID)
		}
		return nil, apperrors.NewAppError(500, "failed to find payroll request "+requestID, err)
	}
	req := mapping.ToDomainPayrollRequest(*m)
	return &req, nil
}

// ListPayrollRequestsByStatus retrieves payroll requests in a given status.
func (r *PgxPayrollRepository) ListPayrollRequestsByStatus(ctx context.Context, status domain.PayrollRequestStatus, limit int, offset int) ([]domain.EnterprisePayrollRequest, error) {
	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_requests
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payroll requests", err)
	}
	defer rows.Close()

	var result []domain.EnterprisePayrollRequest
	for rows.Next() {
		m, err := scanPayrollRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payroll request row", err)
		}
		result = append(result, mapping.ToDomainPayrollRequest(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payroll request rows", err)
	}
	return result, nil
}

// SavePayrollRequest persists a new payroll request.
func (r *PgxPayrollRepository) SavePayrollRequest(ctx context.Context, request domain.EnterprisePayrollRequest) error {
	m := mapping.ToModelPayrollRequest(request)
	query := `
		INSERT INTO payroll_requests (request_id, enterprise_id, specialist_id, amount_per_employee, passport_numbers, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID, m.EnterpriseID, m.SpecialistID, m.AmountPerEmployee,
		m.PassportNumbers, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateConstraint("payroll_request", err)
	}
	return nil
}

// FindPayrollRequestByIDForUpdate retrieves a payroll request and locks its
// row within an open transaction.
func (r *PgxPayrollRepository) FindPayrollRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.EnterprisePayrollRequest, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_requests WHERE request_id = $1 FOR UPDATE;`
	m, err := scanPayrollRow(tx.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payroll request %s", apperrors.ErrNotFound, requestID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock payroll request "+requestID, err)
	}
	req := mapping.ToDomainPayrollRequest(*m)
	return &req, nil
}

// UpdatePayrollRequestStatus transitions a payroll request's status.
func (r *PgxPayrollRepository) UpdatePayrollRequestStatus(ctx context.Context, requestID string, status domain.PayrollRequestStatus, userID string, now time.Time) error {
	ct, err := r.Pool.Exec(ctx, payrollStatusQuery, requestID, string(status), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of payroll request "+requestID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: payroll request %s", apperrors.ErrNotFound, requestID)
	}
	return nil
}

// UpdatePayrollRequestStatusInTx transitions a payroll request's status within an open transaction.
func (r *PgxPayrollRepository) UpdatePayrollRequestStatusInTx(ctx context.Context, tx pgx.Tx, requestID string, status domain.PayrollRequestStatus, userID string, now time.Time) error {
	ct, err := tx.Exec(ctx, payrollStatusQuery, requestID, string(status), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of payroll request "+requestID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: payroll request %s", apperrors.ErrNotFound, requestID)
	}
	return nil
}

const payrollStatusQuery = `
	UPDATE payroll_requests
	SET status = $2, last_updated_at = $3, last_updated_by = $4
	WHERE request_id = $1;
`
