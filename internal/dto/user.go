package dto

import (
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
)

// RegisterUserRequest defines the data for registering a new user.
// Role is assignable by staff only; self-registration always yields CLIENT.
type RegisterUserRequest struct {
	Name           string          `json:"name" binding:"required,min=3,max=64"`
	PassportNumber string          `json:"passportNumber" binding:"required"`
	Password       string          `json:"password" binding:"required,min=8"`
	Role           domain.UserRole `json:"role" binding:"omitempty,oneof=CLIENT OPERATOR MANAGER ADMINISTRATOR SPECIALIST"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateUserRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=3,max=64"`
	PassportNumber *string `json:"passportNumber"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	PassportNumber string          `json:"passportNumber"`
	Role           domain.UserRole `json:"role"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:         u.UserID,
		Name:           u.Name,
		PassportNumber: u.PassportNumber,
		Role:           u.Role,
		CreatedAt:      u.CreatedAt,
	}
}

// ToListUsersResponse converts a slice of domain.User to UserResponse DTOs
func ToListUsersResponse(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return res
}
