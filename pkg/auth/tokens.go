package auth

import "context"

// TokenGenerator abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}

// PasswordHasher abstracts one-way password hashing.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash; malformed hashes
	// count as a mismatch.
	Verify(password, hash string) bool
}
