package pgsql

import (
	"context"

	"github.com/bankops/backoffice/internal/apperrors"
	"github.com/bankops/backoffice/internal/core/domain"
	portsrepo "github.com/bankops/backoffice/internal/core/ports/repositories"
	"github.com/bankops/backoffice/internal/models"
	"github.com/bankops/backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxOperationRepository persists withdrawal and addition records using pgx.
type PgxOperationRepository struct {
	*BaseRepository
}

func newPgxOperationRepository(base *BaseRepository) *PgxOperationRepository {
	return &PgxOperationRepository{BaseRepository: base}
}

var _ portsrepo.OperationRepositoryFacade = (*PgxOperationRepository)(nil)

// SaveWithdrawalInTx persists a withdrawal record within an open transaction.
func (r *PgxOperationRepository) SaveWithdrawalInTx(ctx context.Context, tx pgx.Tx, withdrawal domain.Withdrawal) error {
	m := mapping.ToModelWithdrawal(withdrawal)
	query := `
		INSERT INTO withdrawals (withdrawal_id, account_id, amount, source, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := tx.Exec(ctx, query, m.WithdrawalID, m.AccountID, m.Amount, m.Source, m.CreatedAt, m.CreatedBy)
	if err != nil {
		return translateConstraint("withdrawal", err)
	}
	return nil
}

// SaveAdditionInTx persists an addition record within an open transaction.
func (r *PgxOperationRepository) SaveAdditionInTx(ctx context.Context, tx pgx.Tx, addition domain.Addition) error {
	m := mapping.ToModelAddition(addition)
	query := `
		INSERT INTO additions (addition_id, account_id, amount, source, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := tx.Exec(ctx, query, m.AdditionID, m.AccountID, m.Amount, m.Source, m.CreatedAt, m.CreatedBy)
	if err != nil {
		return translateConstraint("addition", err)
	}
	return nil
}

// ListWithdrawalsByAccount retrieves withdrawals of an account, newest first.
func (r *PgxOperationRepository) ListWithdrawalsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Withdrawal, error) {
	query := `
		SELECT withdrawal_id, account_id, amount, source, created_at, created_by
		FROM withdrawals
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list withdrawals for account "+accountID, err)
	}
	defer rows.Close()

	var result []domain.Withdrawal
	for rows.Next() {
		var m models.Withdrawal
		if err := rows.Scan(&m.WithdrawalID, &m.AccountID, &m.Amount, &m.Source, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan withdrawal row", err)
		}
		result = append(result, mapping.ToDomainWithdrawal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating withdrawal rows", err)
	}
	return result, nil
}

// ListAdditionsByAccount retrieves additions of an account, newest first.
func (r *PgxOperationRepository) ListAdditionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Addition, error) {
	query := `
		SELECT addition_id, account_id, amount, source, created_at, created_by
		FROM additions
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list additions for account "+accountID, err)
	}
	defer rows.Close()

	var result []domain.Addition
	for rows.Next() {
		var m models.Addition
		if err := rows.Scan(&m.AdditionID, &m.AccountID, &m.Amount, &m.Source, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan addition row", err)
		}
		result = append(result, mapping.ToDomainAddition(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating addition rows", err)
	}
	return result, nil
}
