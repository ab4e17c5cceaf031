package services

import (
	"context"

	"github.com/bankops/backoffice/internal/dto"
)

// AuthSvcFacade defines authentication operations.
type AuthSvcFacade interface {
	// Login verifies the credentials and issues a signed access token carrying
	// the user's ID and role.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
