package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the actor is not allowed to perform the action.
// It deliberately carries no resource detail so callers cannot probe for existence.
var ErrForbidden = errors.New("forbidden")

// ErrInsufficientFunds indicates that a debit would drive an account balance below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAlreadyTerminal indicates an attempted transition on an entity that is
// already in a terminal state (e.g. reversing a canceled transfer).
var ErrAlreadyTerminal = errors.New("entity is in a terminal state")

// ErrAccountNotActive indicates a client-initiated mutation on a non-ACTIVE account.
var ErrAccountNotActive = errors.New("account is not active")

// ErrForeignKey indicates a write referenced a row that does not exist.
var ErrForeignKey = errors.New("foreign key violation")

// ErrNoFieldsToUpdate indicates a partial-update request contained no settable fields.
var ErrNoFieldsToUpdate = errors.New("no fields to update")

// AppError wraps an underlying error with an internal code and message,
// used by the persistence layer for failures that have no domain meaning.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ConstraintViolationError is a typed failure surfaced when a write violates a
// database-level constraint. It carries enough detail for the caller to name
// the offending entity and field without exposing raw driver errors.
type ConstraintViolationError struct {
	Kind       error // ErrDuplicate or ErrForeignKey
	Entity     string
	Constraint string
	Err        error
}

// Error implements the error interface.
func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("%v on %s (constraint %s)", e.Kind, e.Entity, e.Constraint)
}

// Unwrap reports the taxonomy kind so that errors.Is(err, ErrDuplicate) works.
func (e *ConstraintViolationError) Unwrap() error {
	return e.Kind
}
