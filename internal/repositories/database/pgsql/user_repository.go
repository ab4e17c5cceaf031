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

// PgxUserRepository implements user persistence using pgx.
type PgxUserRepository struct {
	*BaseRepository
}

func newPgxUserRepository(base *BaseRepository) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: base}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, passport_number, role, password_hash, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanUserRow(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID, &m.Name, &m.PassportNumber, &m.Role, &m.PasswordHash,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindUserByID retrieves a specific user by ID. Soft-deleted users are not returned.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`
	m, err := scanUserRow(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID, err)
	}
	u := mapping.ToDomainUser(*m)
	return &u, nil
}

// FindUserByName retrieves a user by login name.
func (r *PgxUserRepository) FindUserByName(ctx context.Context, name string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name = $1 AND deleted_at IS NULL;`
	m, err := scanUserRow(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user named %q", apperrors.ErrNotFound, name)
		}
		return nil, apperrors.NewAppError(500, "failed to find user by name", err)
	}
	u := mapping.ToDomainUser(*m)
	return &u, nil
}

// FindUsersByPassportNumbers retrieves users keyed by passport number.
// Passport numbers with no matching user are simply absent from the result.
func (r *PgxUserRepository) FindUsersByPassportNumbers(ctx context.Context, passportNumbers []string) (map[string]domain.User, error) {
	if len(passportNumbers) == 0 {
		return map[string]domain.User{}, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE passport_number = ANY($1) AND deleted_at IS NULL;`
	rows, err := r.Pool.Query(ctx, query, passportNumbers)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find users by passport numbers", err)
	}
	defer rows.Close()

	result := make(map[string]domain.User, len(passportNumbers))
	for rows.Next() {
		m, err := scanUserRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user row", err)
		}
		u := mapping.ToDomainUser(*m)
		result[u.PassportNumber] = u
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user rows", err)
	}
	return result, nil
}

// ListUsers retrieves a paginated list of users.
func (r *PgxUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL ORDER BY created_at LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list users", err)
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		m, err := scanUserRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user row", err)
		}
		result = append(result, mapping.ToDomainUser(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user rows", err)
	}
	return result, nil
}

// SaveUser persists a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, name, passport_number, role, password_hash, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Name, m.PassportNumber, m.Role, m.PasswordHash,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateConstraint("user", err)
	}
	return nil
}

// UpdateUser updates an existing user's details.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET name = $2, passport_number = $3, role = $4, password_hash = $5, last_updated_at = $6, last_updated_by = $7
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	ct, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Name, m.PassportNumber, m.Role, m.PasswordHash,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateConstraint("user", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, user.UserID)
	}
	return nil
}

// DeleteUser soft deletes a user by stamping deleted_at.
func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE users
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	ct, err := r.Pool.Exec(ctx, query, userID, now, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete user "+userID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}
