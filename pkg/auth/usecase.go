package auth

import (
	"context"
	"errors"
	"time"
)

// MinPasswordLen is the minimum accepted password length at signup.
const MinPasswordLen = 8

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Signup(ctx context.Context, email, password string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
}

type AuthResult struct {
	User  User
	Token string
}

type authService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenGenerator
	policy EmailPolicy
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenGenerator, policy EmailPolicy) AuthUseCase {
	return &authService{repo: repo, hasher: hasher, tokens: tokens, policy: policy}
}

func (s *authService) Signup(ctx context.Context, email, password string) (AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrMissingCredentials
	}
	if len(password) < MinPasswordLen {
		return AuthResult{}, ErrPasswordTooShort
	}
	if !s.policy.Allowed(email) {
		return AuthResult{}, ErrEmailNotAllowed
	}

	// Fail fast on a known address; the unique constraint in the store
	// still decides races between concurrent signups.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.repo.Create(ctx, User{
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrMissingCredentials
	}
	// Unknown email and wrong password collapse into the same error so
	// responses cannot be used to enumerate accounts.
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}
