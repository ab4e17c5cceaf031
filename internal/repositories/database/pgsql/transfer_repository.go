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
	"github.com/bankops/backoffice/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// PgxTransferRepository implements transfer persistence using pgx.
type PgxTransferRepository struct {
	*BaseRepository
}

func newPgxTransferRepository(base *BaseRepository) *PgxTransferRepository {
	return &PgxTransferRepository{BaseRepository: base}
}

var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

const transferColumns = `transfer_id, from_account_id, to_account_id, amount, status, created_at, created_by, last_updated_at, last_updated_by`

func scanTransferRow(row pgx.Row) (*models.Transfer, error) {
	var m models.Transfer
	err := row.Scan(
		&m.TransferID,
		&m.FromAccountID,
		&m.ToAccountID,
		&m.Amount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindTransferByID retrieves a specific transfer by ID.
func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_id = $1;`
	m, err := scanTransferRow(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, transferID)
		}
		return nil, apperrors.NewAppError(500, "failed to find transfer "+transferID, err)
	}
	t := mapping.ToDomainTransfer(*m)
	return &t, nil
}

// ListTransfersByAccount retrieves transfers touching an account, newest first,
// using token-based pagination over (created_at, transfer_id).
func (r *PgxTransferRepository) ListTransfersByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transfer, *string, error) {
	args := []interface{}{accountID, limit + 1}
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE (from_account_id = $1 OR to_account_id = $1)
	`
	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		lastCreatedAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (created_at, transfer_id) < ($3, $4)`
		args = append(args, lastCreatedAt, fields[1])
	}
	query += ` ORDER BY created_at DESC, transfer_id DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list transfers for account "+accountID, err)
	}
	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		m, err := scanTransferRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transfer row", err)
		}
		transfers = append(transfers, mapping.ToDomainTransfer(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transfer rows", err)
	}

	var newToken *string
	if len(transfers) > limit {
		transfers = transfers[:limit]
		last := transfers[len(transfers)-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.TransferID)
		newToken = &token
	}
	return transfers, newToken, nil
}

// FindTransferByIDForUpdate retrieves a transfer and locks its row within an
// open transaction.
func (r *PgxTransferRepository) FindTransferByIDForUpdate(ctx context.Context, tx pgx.Tx, transferID string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_id = $1 FOR UPDATE;`
	m, err := scanTransferRow(tx.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, transferID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock transfer "+transferID, err)
	}
	t := mapping.ToDomainTransfer(*m)
	return &t, nil
}

// SaveTransferInTx persists a new transfer within an open transaction.
func (r *PgxTransferRepository) SaveTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	m := mapping.ToModelTransfer(transfer)
	query := `
		INSERT INTO transfers (transfer_id, from_account_id, to_account_id, amount, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.TransferID, m.FromAccountID, m.ToAccountID, m.Amount, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateConstraint("transfer", err)
	}
	return nil
}

// UpdateTransferStatusInTx transitions a transfer's status within an open transaction.
func (r *PgxTransferRepository) UpdateTransferStatusInTx(ctx context.Context, tx pgx.Tx, transferID string, status domain.TransferStatus, userID string, now time.Time) error {
	query := `
		UPDATE transfers
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transfer_id = $1;
	`
	ct, err := tx.Exec(ctx, query, transferID, string(status), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of transfer "+transferID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, transferID)
	}
	return nil
}
