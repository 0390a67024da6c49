package jwt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuzn/unimarket/pkg/auth"
)

func newProtectedApp(t *testing.T, g *Generator) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", NewAuthMiddleware(g), func(c *fiber.Ctx) error {
		identity, ok := IdentityFromCtx(c)
		require.True(t, ok)
		return c.JSON(identity)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	g := NewGenerator("test-secret", "unimarket-api", time.Hour)
	app := newProtectedApp(t, g)

	token, err := g.Generate(context.Background(), auth.User{ID: 7, Email: "bob@university.edu"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "missing header", authHeader: "", wantStatus: 401},
		{name: "bare token without scheme", authHeader: token, wantStatus: 401},
		{name: "wrong scheme", authHeader: "Basic " + token, wantStatus: 401},
		{name: "empty bearer", authHeader: "Bearer ", wantStatus: 401},
		{name: "invalid token", authHeader: "Bearer not.a.token", wantStatus: 401},
		{name: "valid bearer", authHeader: "Bearer " + token, wantStatus: 200},
		{name: "case-insensitive scheme", authHeader: "bearer " + token, wantStatus: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestAuthMiddlewareAttachesIdentity(t *testing.T) {
	g := NewGenerator("test-secret", "unimarket-api", time.Hour)
	app := newProtectedApp(t, g)

	token, err := g.Generate(context.Background(), auth.User{ID: 7, Email: "bob@university.edu"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload auth.TokenPayload
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, int64(7), payload.UserID)
	assert.Equal(t, "bob@university.edu", payload.Email)
}

func TestAuthMiddlewareUniformMessage(t *testing.T) {
	g := NewGenerator("test-secret", "unimarket-api", time.Hour)
	app := newProtectedApp(t, g)

	expired := NewGenerator("test-secret", "unimarket-api", time.Millisecond)
	expiredToken, err := expired.Generate(context.Background(), auth.User{ID: 7})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	// Expired and tampered tokens must produce the same body.
	bodies := map[string]string{}
	for name, tok := range map[string]string{
		"expired":  expiredToken,
		"tampered": expiredToken + "x",
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, 401, resp.StatusCode)
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		bodies[name] = string(b)
	}
	assert.Equal(t, bodies["expired"], bodies["tampered"])
}
