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

// PgxLoanRepository implements loan persistence using pgx.
type PgxLoanRepository struct {
	*BaseRepository
}

func newPgxLoanRepository(base *BaseRepository) *PgxLoanRepository {
	return &PgxLoanRepository{BaseRepository: base}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

// SaveLoanWithAccount persists the loan terms, the pending LOAN-type account,
// and the linking loan account in one transaction.
func (r *PgxLoanRepository) SaveLoanWithAccount(ctx context.Context, loan domain.Loan, loanAccount domain.LoanAccount, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	mac := mapping.ToModelAccount(account)
	pendingQuery := `
		INSERT INTO accounts (account_id, owner_user_id, bank_id, status, account_type, balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	if _, err := tx.Exec(ctx, pendingQuery,
		mac.AccountID, mac.OwnerUserID, mac.BankID, mac.Status, mac.AccountType, mac.Balance,
		mac.CreatedAt, mac.CreatedBy, mac.LastUpdatedAt, mac.LastUpdatedBy,
	); err != nil {
		return translateConstraint("account", err)
	}

	ml := mapping.ToModelLoan(loan)
	loanQuery := `
		INSERT INTO loans (loan_id, amount, term_months, rate_percent, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	if _, err := tx.Exec(ctx, loanQuery,
		ml.LoanID, ml.Amount, ml.TermMonths, ml.RatePercent,
		ml.CreatedAt, ml.CreatedBy, ml.LastUpdatedAt, ml.LastUpdatedBy,
	); err != nil {
		return translateConstraint("loan", err)
	}

	ma := mapping.ToModelLoanAccount(loanAccount)
	accountQuery := `
		INSERT INTO loan_accounts (loan_account_id, loan_id, account_id, owner_user_id, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	if _, err := tx.Exec(ctx, accountQuery,
		ma.LoanAccountID, ma.LoanID, ma.AccountID, ma.OwnerUserID, ma.Status,
		ma.CreatedAt, ma.CreatedBy, ma.LastUpdatedAt, ma.LastUpdatedBy,
	); err != nil {
		return translateConstraint("loan_account", err)
	}

	return r.Commit(ctx, tx)
}

// FindLoanByID retrieves a loan's terms.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `
		SELECT loan_id, amount, term_months, rate_percent, created_at, created_by, last_updated_at, last_updated_by
		FROM loans WHERE loan_id = $1;
	`
	var m models.Loan
	err := r.Pool.QueryRow(ctx, query, loanID).Scan(
		&m.LoanID, &m.Amount, &m.TermMonths, &m.RatePercent,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
		}
		return nil, apperrors.NewAppError(500, "failed to find loan "+loanID, err)
	}
	l := mapping.ToDomainLoan(m)
	return &l, nil
}

const loanAccountColumns = `loan_account_id, loan_id, account_id, owner_user_id, status, created_at, created_by, last_updated_at, last_updated_by`

func scanLoanAccountRow(row pgx.Row) (*models.LoanAccount, error) {
	var m models.LoanAccount
	err := row.Scan(
		&m.LoanAccountID, &m.LoanID, &m.AccountID, &m.OwnerUserID, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindLoanAccountByID retrieves a loan account.
func (r *PgxLoanRepository) FindLoanAccountByID(ctx context.Context, loanAccountID string) (*domain.LoanAccount, error) {
	query := `SELECT ` + loanAccountColumns + ` FROM loan_accounts WHERE loan_account_id = $1;`
	m, err := scanLoanAccountRow(r.Pool.QueryRow(ctx, query, loanAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: loan account %s", apperrors.ErrNotFound, loanAccountID)
		}
		return nil, apperrors.NewAppError(500, "failed to find loan account "+loanAccountID, err)
	}
	la := mapping.ToDomainLoanAccount(*m)
	return &la, nil
}

// ListLoanAccountsByStatus retrieves loan accounts in a given status.
func (r *PgxLoanRepository) ListLoanAccountsByStatus(ctx context.Context, status domain.LoanAccountStatus, limit int, offset int) ([]domain.LoanAccount, error) {
	query := `
		SELECT ` + loanAccountColumns + `
		FROM loan_accounts
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list loan accounts", err)
	}
	defer rows.Close()

	var result []domain.LoanAccount
	for rows.Next() {
		m, err := scanLoanAccountRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan loan account row", err)
		}
		result = append(result, mapping.ToDomainLoanAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating loan account rows", err)
	}
	return result, nil
}

// ListLoanTransactions retrieves the transaction history of a loan account.
func (r *PgxLoanRepository) ListLoanTransactions(ctx context.Context, loanAccountID string, limit int, offset int) ([]domain.LoanTransaction, error) {
	query := `
		SELECT loan_transaction_id, loan_account_id, amount, kind, created_at, created_by
		FROM loan_transactions
		WHERE loan_account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, loanAccountID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list loan transactions", err)
	}
	defer rows.Close()

	var result []domain.LoanTransaction
	for rows.Next() {
		var m models.LoanTransaction
		if err := rows.Scan(&m.LoanTransactionID, &m.LoanAccountID, &m.Amount, &m.Kind, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan loan transaction row", err)
		}
		result = append(result, mapping.ToDomainLoanTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating loan transaction rows", err)
	}
	return result, nil
}

// UpdateLoanAccountStatusInTx transitions a loan account's status within an open transaction.
// FindLoanAccountByIDForUpdate retrieves a loan account and locks its row
// within an open transaction.
func (r *PgxLoanRepository) FindLoanAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, loanAccountID string) (*domain.LoanAccount, error) {
	query := `SELECT ` + loanAccountColumns + ` FROM loan_accounts WHERE loan_account_id = $1 FOR UPDATE;`
	m, err := scanLoanAccountRow(tx.QueryRow(ctx, query, loanAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: loan account %s", apperrors.ErrNotFound, loanAccountID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock loan account "+loanAccountID, err)
	}
	la := mapping.ToDomainLoanAccount(*m)
	return &la, nil
}

func (r *PgxLoanRepository) UpdateLoanAccountStatusInTx(ctx context.Context, tx pgx.Tx, loanAccountID string, status domain.LoanAccountStatus, userID string, now time.Time) error {
	query := `
		UPDATE loan_accounts
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE loan_account_id = $1;
	`
	ct, err := tx.Exec(ctx, query, loanAccountID, string(status), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of loan account "+loanAccountID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan account %s", apperrors.ErrNotFound, loanAccountID)
	}
	return nil
}

// SaveLoanTransactionInTx persists a loan transaction record within an open transaction.
func (r *PgxLoanRepository) SaveLoanTransactionInTx(ctx context.Context, tx pgx.Tx, loanTxn domain.LoanTransaction) error {
	m := mapping.ToModelLoanTransaction(loanTxn)
	query := `
		INSERT INTO loan_transactions (loan_transaction_id, loan_account_id, amount, kind, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := tx.Exec(ctx, query, m.LoanTransactionID, m.LoanAccountID, m.Amount, m.Kind, m.CreatedAt, m.CreatedBy)
	if err != nil {
		return translateConstraint("loan_transaction", err)
	}
	return nil
}
