package repositories

import (
	"context"
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByName retrieves a user by login name.
	FindUserByName(ctx context.Context, name string) (*domain.User, error)

	// FindUsersByPassportNumbers retrieves users keyed by passport number.
	// Passport numbers with no matching user are absent from the result.
	FindUsersByPassportNumbers(ctx context.Context, passportNumbers []string) (map[string]domain.User, error)

	// ListUsers retrieves a paginated list of users (staff view).
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// DeleteUser soft deletes a user.
	DeleteUser(ctx context.Context, userID string, deletedBy string, now time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
