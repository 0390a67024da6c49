package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apihttp "github.com/vkuzn/unimarket/api/http"
	"github.com/vkuzn/unimarket/api/http/handlers"
	"github.com/vkuzn/unimarket/pkg/auth"
	"github.com/vkuzn/unimarket/pkg/category"
	"github.com/vkuzn/unimarket/pkg/health"
	"github.com/vkuzn/unimarket/pkg/product"
	"github.com/vkuzn/unimarket/pkg/security/jwt"
	"github.com/vkuzn/unimarket/pkg/security/password"
)

// In-memory repositories so handler tests run the real use cases without a
// database.

type memUserRepo struct {
	byEmail map[string]auth.User
	nextID  int64
}

func (r *memUserRepo) Create(ctx context.Context, user auth.User) (auth.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return auth.User{}, auth.ErrUserAlreadyExists
	}
	user.ID = r.nextID
	r.nextID++
	r.byEmail[user.Email] = user
	return user, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	user, ok := r.byEmail[auth.NormalizeEmail(email)]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return user, nil
}

type memProductRepo struct {
	byID   map[int64]product.Product
	nextID int64
}

func (r *memProductRepo) Create(ctx context.Context, p product.Product) (product.Product, error) {
	p.ID = r.nextID
	r.nextID++
	r.byID[p.ID] = p
	return p, nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id int64) (product.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) List(ctx context.Context, f product.ListFilter) ([]product.Product, error) {
	out := []product.Product{}
	for _, p := range r.byID {
		if f.CategoryID == 0 || p.CategoryID == f.CategoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]product.Product, error) {
	out := []product.Product{}
	for _, p := range r.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Update(ctx context.Context, p product.Product) (product.Product, error) {
	if _, ok := r.byID[p.ID]; !ok {
		return product.Product{}, product.ErrNotFound
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *memProductRepo) MarkSold(ctx context.Context, id int64) (product.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	p.IsSold = true
	r.byID[id] = p
	return p, nil
}

func (r *memProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return product.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type memCategoryRepo struct {
	categories []category.Category
}

func (r *memCategoryRepo) List(ctx context.Context) ([]category.Category, error) {
	return r.categories, nil
}

func (r *memCategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type testEnv struct {
	app    *fiber.App
	tokens *jwt.Generator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userRepo := &memUserRepo{byEmail: map[string]auth.User{}, nextID: 1}
	productRepo := &memProductRepo{byID: map[int64]product.Product{}, nextID: 1}
	categoryRepo := &memCategoryRepo{categories: []category.Category{
		{ID: 1, Name: "Books"},
		{ID: 2, Name: "Electronics"},
	}}

	tokens := jwt.NewGenerator("test-secret", "unimarket-api", time.Hour)
	hasher := password.NewHasher(bcrypt.MinCost)
	policy := auth.NewEmailPolicy("university.edu")

	authHandler := handlers.NewAuthHandler(auth.NewAuthService(userRepo, hasher, tokens, policy))
	productHandler := handlers.NewProductHandler(product.NewService(productRepo, categoryRepo))
	categoryHandler := handlers.NewCategoryHandler(category.NewService(categoryRepo))
	healthHandler := handlers.NewHealthHandler(health.NewService())

	app := fiber.New()
	apihttp.Register(app, authHandler, healthHandler, productHandler, categoryHandler,
		jwt.NewAuthMiddleware(tokens))

	return &testEnv{app: app, tokens: tokens}
}

func (e *testEnv) request(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

// signup registers a user through the real endpoint and returns its token.
func (e *testEnv) signup(t *testing.T, email, pass string) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/auth/signup", "",
		`{"email":"`+email+`","password":"`+pass+`"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v))
}
