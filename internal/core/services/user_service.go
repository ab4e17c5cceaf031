package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bankops/backoffice/internal/apperrors"
	"github.com/bankops/backoffice/internal/core/domain"
	portsrepo "github.com/bankops/backoffice/internal/core/ports/repositories"
	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/dto"
	"github.com/bankops/backoffice/internal/middleware"
	"github.com/bankops/backoffice/internal/utils"
)

// userService provides registration and management of bank users.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a new user with a bcrypt-hashed password. A role above
// CLIENT can only be assigned by a staff actor; self-registration (empty
// actor) always yields CLIENT.
func (s *userService) RegisterUser(ctx context.Context, actor domain.Actor, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := req.Role
	if role == "" {
		role = domain.RoleClient
	}
	if role != domain.RoleClient {
		if err := Authorize(ActionStaffManage, actor, ""); err != nil {
			return nil, fmt.Errorf("%w: role %s requires staff assignment", apperrors.ErrForbidden, role)
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:         uuid.NewString(),
		Name:           req.Name,
		PassportNumber: req.PassportNumber,
		Role:           role,
		PasswordHash:   hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if user.CreatedBy == "" {
		user.CreatedBy = user.UserID
		user.LastUpdatedBy = user.UserID
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// GetUserByID retrieves a user. Clients may only read themselves.
func (s *userService) GetUserByID(ctx context.Context, actor domain.Actor, userID string) (*domain.User, error) {
	if err := Authorize(ActionOwnRead, actor, userID); err != nil {
		return nil, err
	}
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListUsers retrieves a paginated list of users (staff view).
func (s *userService) ListUsers(ctx context.Context, actor domain.Actor, limit int, offset int) ([]domain.User, error) {
	if err := Authorize(ActionStaffList, actor, ""); err != nil {
		return nil, err
	}
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// UpdateUser updates a user's details. Users may update themselves; staff may
// update anyone.
func (s *userService) UpdateUser(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionOwnRead, actor, userID); err != nil {
		return nil, err
	}
	if actor.UserID != userID {
		if err := Authorize(ActionStaffManage, actor, ""); err != nil {
			return nil, err
		}
	}
	if req.Name == nil && req.PassportNumber == nil {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.PassportNumber != nil {
		user.PassportNumber = *req.PassportNumber
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = actor.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User updated", slog.String("user_id", userID))
	return user, nil
}

// DeleteUser soft deletes a user. Staff only.
func (s *userService) DeleteUser(ctx context.Context, actor domain.Actor, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionStaffManage, actor, ""); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(ctx, userID, actor.UserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete user", slog.String("user_id", userID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("User deleted", slog.String("user_id", userID))
	return nil
}
