package services

import (
	"context"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user, subject to ownership checks.
	GetUserByID(ctx context.Context, actor domain.Actor, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users (staff view).
	ListUsers(ctx context.Context, actor domain.Actor, limit int, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new user with a hashed password. Role assignment
	// above CLIENT requires a staff actor.
	RegisterUser(ctx context.Context, actor domain.Actor, req dto.RegisterUserRequest) (*domain.User, error)

	// UpdateUser updates a user's details.
	UpdateUser(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// DeleteUser soft deletes a user. Staff only.
	DeleteUser(ctx context.Context, actor domain.Actor, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
