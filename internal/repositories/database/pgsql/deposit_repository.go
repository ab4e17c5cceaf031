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

// PgxDepositRepository implements deposit persistence using pgx.
type PgxDepositRepository struct {
	*BaseRepository
}

func newPgxDepositRepository(base *BaseRepository) *PgxDepositRepository {
	return &PgxDepositRepository{BaseRepository: base}
}

var _ portsrepo.DepositRepositoryFacade = (*PgxDepositRepository)(nil)

const depositColumns = `deposit_account_id, account_id, funding_account_id, owner_user_id, rate_percent, status, created_at, created_by, last_updated_at, last_updated_by`

func scanDepositRow(row pgx.Row) (*models.DepositAccount, error) {
	var m models.DepositAccount
	err := row.Scan(
		&m.DepositAccountID, &m.AccountID, &m.FundingAccountID, &m.OwnerUserID,
		&m.RatePercent, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveDepositAccountInTx persists a new deposit account link within an open transaction.
func (r *PgxDepositRepository) SaveDepositAccountInTx(ctx context.Context, tx pgx.Tx, deposit domain.DepositAccount) error {
	m := mapping.ToModelDepositAccount(deposit)
	query := `
		INSERT INTO deposit_accounts (deposit_account_id, account_id, funding_account_id, owner_user_id, rate_percent, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.DepositAccountID, m.AccountID, m.FundingAccountID, m.OwnerUserID,
		m.RatePercent, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateConstraint("deposit_account", err)
	}
	return nil
}

// FindDepositAccountByID retrieves a deposit account.
func (r *PgxDepositRepository) FindDepositAccountByID(ctx context.Context, depositAccountID string) (*domain.DepositAccount, error) {
	query := `SELECT ` + depositColumns + ` FROM deposit_accounts WHERE deposit_account_id = $1;`
	m, err := scanDepositRow(r.Pool.QueryRow(ctx, query, depositAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: deposit account %s", apperrors.ErrNotFound, depositAccountID)
		}
		return nil, apperrors.NewAppError(500, "failed to find deposit account "+depositAccountID, err)
	}
	d := mapping.ToDomainDepositAccount(*m)
	return &d, nil
}

// FindDepositAccountsByOwner retrieves all deposit accounts of a user.
func (r *PgxDepositRepository) FindDepositAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.DepositAccount, error) {
	query := `SELECT ` + depositColumns + ` FROM deposit_accounts WHERE owner_user_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list deposit accounts of user "+ownerUserID, err)
	}
	defer rows.Close()

	var result []domain.DepositAccount
	for rows.Next() {
		m, err := scanDepositRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan deposit account row", err)
		}
		result = append(result, mapping.ToDomainDepositAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating deposit account rows", err)
	}
	return result, nil
}

// ListDepositTransactions retrieves the transaction history of a deposit account.
func (r *PgxDepositRepository) ListDepositTransactions(ctx context.Context, depositAccountID string, limit int, offset int) ([]domain.DepositTransaction, error) {
	query := `
		SELECT deposit_transaction_id, deposit_account_id, amount, kind, created_at, created_by
		FROM deposit_transactions
		WHERE deposit_account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, depositAccountID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list deposit transactions", err)
	}
	defer rows.Close()

	var result []domain.DepositTransaction
	for rows.Next() {
		var m models.DepositTransaction
		if err := rows.Scan(&m.DepositTransactionID, &m.DepositAccountID, &m.Amount, &m.Kind, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan deposit transaction row", err)
		}
		result = append(result, mapping.ToDomainDepositTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating deposit transaction rows", err)
	}
	return result, nil
}

// UpdateDepositStatusInTx transitions a deposit account's status within an open transaction.
// FindDepositAccountByIDForUpdate retrieves a deposit account and locks its
// row within an open transaction.
func (r *PgxDepositRepository) FindDepositAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, depositAccountID string) (*domain.DepositAccount, error) {
	query := `SELECT ` + depositColumns + ` FROM deposit_accounts WHERE deposit_account_id = $1 FOR UPDATE;`
	m, err := scanDepositRow(tx.QueryRow(ctx, query, depositAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: deposit account %s", apperrors.ErrNotFound, depositAccountID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock deposit account "+depositAccountID, err)
	}
	d := mapping.ToDomainDepositAccount(*m)
	return &d, nil
}

func (r *PgxDepositRepository) UpdateDepositStatusInTx(ctx context.Context, tx pgx.Tx, depositAccountID string, status domain.DepositAccountStatus, userID string, now time.Time) error {
	query := `
		UPDATE deposit_accounts
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE deposit_account_id = $1;
	`
	ct, err := tx.Exec(ctx, query, depositAccountID, string(status), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of deposit account "+depositAccountID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: deposit account %s", apperrors.ErrNotFound, depositAccountID)
	}
	return nil
}

// SaveDepositTransactionInTx persists a deposit transaction record within an open transaction.
func (r *PgxDepositRepository) SaveDepositTransactionInTx(ctx context.Context, tx pgx.Tx, depositTxn domain.DepositTransaction) error {
	m := mapping.ToModelDepositTransaction(depositTxn)
	query := `
		INSERT INTO deposit_transactions (deposit_transaction_id, deposit_account_id, amount, kind, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := tx.Exec(ctx, query, m.DepositTransactionID, m.DepositAccountID, m.Amount, m.Kind, m.CreatedAt, m.CreatedBy)
	if err != nil {
		return translateConstraint("deposit_transaction", err)
	}
	return nil
}
