package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user User) (User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return User{}, ErrUserAlreadyExists
	}
	user.ID = r.nextID
	r.nextID++
	r.byEmail[user.Email] = user
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	user, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(h), err
}

func (fakeHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type fakeTokens struct{}

func (fakeTokens) Generate(ctx context.Context, user User) (string, error) {
	return "token-for-" + user.Email, nil
}

func newTestService() (AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, fakeHasher{}, fakeTokens{}, NewEmailPolicy("university.edu"))
	return svc, repo
}

func TestSignupSuccess(t *testing.T) {
	svc, repo := newTestService()

	result, err := svc.Signup(context.Background(), "  Alice@University.EDU ", "longenough")
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.User.ID)
	assert.Equal(t, "alice@university.edu", result.User.Email)
	assert.Equal(t, "token-for-alice@university.edu", result.Token)
	assert.NotEqual(t, "longenough", result.User.PasswordHash)
	assert.False(t, result.User.CreatedAt.IsZero())

	stored, ok := repo.byEmail["alice@university.edu"]
	require.True(t, ok, "user must be stored under the normalized email")
	assert.NotContains(t, stored.PasswordHash, "longenough")
}

func TestSignupRejectsMissingFields(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), "", "longenough")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.Signup(context.Background(), "alice@university.edu", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), "alice@university.edu", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestSignupRejectsForeignDomain(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Signup(context.Background(), "alice@gmail.com", "longenough")
	assert.ErrorIs(t, err, ErrEmailNotAllowed)
	assert.Empty(t, repo.byEmail, "no identity may be created on policy violation")
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), "alice@university.edu", "longenough")
	require.NoError(t, err)

	// Same address with different case and padding is still a duplicate.
	_, err = svc.Signup(context.Background(), " ALICE@university.edu", "otherpassword")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), "  Alice@University.EDU ", "longenough")
	require.NoError(t, err)

	// Different trim/case at login must still resolve the same identity.
	result, err := svc.Login(context.Background(), "alice@university.edu ", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "alice@university.edu", result.User.Email)
	assert.NotEmpty(t, result.Token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), "alice@university.edu", "longenough")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), "alice@university.edu", "wrongpassword")
	_, unknownEmail := svc.Login(context.Background(), "nobody@university.edu", "longenough")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginRejectsMissingFields(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), "", "longenough")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.Login(context.Background(), "alice@university.edu", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}
