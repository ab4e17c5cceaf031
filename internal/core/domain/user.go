package domain

import "time"

// UserRole defines the possible roles a user can hold in the bank back office.
type UserRole string

const (
	RoleClient        UserRole = "CLIENT"
	RoleOperator      UserRole = "OPERATOR"
	RoleManager       UserRole = "MANAGER"
	RoleAdministrator UserRole = "ADMINISTRATOR"
	RoleSpecialist    UserRole = "SPECIALIST"
)

// IsStaff reports whether the role belongs to bank staff with management rights.
func (r UserRole) IsStaff() bool {
	return r == RoleAdministrator || r == RoleManager
}

// User represents a registered user of the bank.
type User struct {
	UserID         string   `json:"userID"` // Primary Key (UUID)
	Name           string   `json:"name"`
	PassportNumber string   `json:"passportNumber"`
	Role           UserRole `json:"role"`
	PasswordHash   string   `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// Actor is the authenticated identity invoking an operation.
// It is extracted from the access token by the auth middleware and is the only
// identity input the service layer trusts.
type Actor struct {
	UserID string   `json:"userID"`
	Role   UserRole `json:"role"`
}
