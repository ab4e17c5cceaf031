package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bankops/backoffice/internal/apperrors"
	"github.com/bankops/backoffice/internal/core/domain"
	portsrepo "github.com/bankops/backoffice/internal/core/ports/repositories"
	"github.com/bankops/backoffice/internal/models"
	"github.com/bankops/backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxBankRepository implements bank persistence using pgx.
type PgxBankRepository struct {
	*BaseRepository
}

func newPgxBankRepository(base *BaseRepository) *PgxBankRepository {
	return &PgxBankRepository{BaseRepository: base}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

const bankColumns = `bank_id, name, bic, address, created_at, created_by, last_updated_at, last_updated_by`

func scanBankRow(row pgx.Row) (*models.Bank, error) {
	var m models.Bank
	err := row.Scan(
		&m.BankID, &m.Name, &m.BIC, &m.Address,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveBank persists a new bank.
func (r *PgxBankRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	m := mapping.ToModelBank(bank)
	query := `
		INSERT INTO banks (bank_id, name, bic, address, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BankID, m.Name, m.BIC, m.Address,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateConstraint("bank", err)
	}
	return nil
}

// FindBankByID retrieves a bank.
func (r *PgxBankRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	query := `SELECT ` + bankColumns + ` FROM banks WHERE bank_id = $1;`
	m, err := scanBankRow(r.Pool.QueryRow(ctx, query, bankID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: bank %s", apperrors.ErrNotFound, bankID)
		}
		return nil, apperrors.NewAppError(500, "failed to find bank "+bankID, err)
	}
	b := mapping.ToDomainBank(*m)
	return &b, nil
}

// ListBanks retrieves all banks, paginated.
func (r *PgxBankRepository) ListBanks(ctx context.Context, limit int, offset int) ([]domain.Bank, error) {
	query := `SELECT ` + bankColumns + ` FROM banks ORDER BY name LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list banks", err)
	}
	defer rows.Close()

	var result []domain.Bank
	for rows.Next() {
		m, err := scanBankRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank row", err)
		}
		result = append(result, mapping.ToDomainBank(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank rows", err)
	}
	return result, nil
}

// DeleteBank removes a bank. Fails with a foreign-key violation while
// accounts still reference it.
func (r *PgxBankRepository) DeleteBank(ctx context.Context, bankID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM banks WHERE bank_id = $1;`, bankID)
	if err != nil {
		return translateConstraint("bank", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: bank %s", apperrors.ErrNotFound, bankID)
	}
	return nil
}
