package auth

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotAllowed    = errors.New("only university email addresses are allowed")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc.
type UserRepository interface {
	// Create stores a new user and returns it with the assigned id.
	// A duplicate email yields ErrUserAlreadyExists.
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
