package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bankops/backoffice/internal/apperrors"
	portsrepo "github.com/bankops/backoffice/internal/core/ports/repositories"
	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/dto"
	"github.com/bankops/backoffice/internal/middleware"
	"github.com/bankops/backoffice/internal/platform/config"
	"github.com/bankops/backoffice/internal/utils"
)

// ErrInvalidCredentials is returned on login with an unknown name or a wrong
// password. It carries no detail on which of the two failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// authService issues access tokens against stored credentials.
type authService struct {
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies name and password and issues a signed access token carrying
// the user's role.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login rejected", slog.String("user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateJWT(user.UserID, user.Role, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign access token", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Login succeeded", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}
