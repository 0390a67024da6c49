package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vkuzn/unimarket/pkg/auth"
)

// TokenVerifier resolves a bearer token into an identity.
type TokenVerifier interface {
	Verify(token string) (auth.TokenPayload, error)
}

const (
	localsUserID = "userId"
	localsEmail  = "userEmail"
)

// NewAuthMiddleware returns a Fiber middleware that requires a valid
// "Bearer <token>" Authorization header. On success it attaches the resolved
// identity to the request via c.Locals; read it back with IdentityFromCtx.
// The 401 message is the same for every failure mode.
func NewAuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		scheme, tokenStr, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		tokenStr = strings.TrimSpace(tokenStr)
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		payload, err := verifier.Verify(tokenStr)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token"})
		}
		c.Locals(localsUserID, payload.UserID)
		c.Locals(localsEmail, payload.Email)
		return c.Next()
	}
}

// IdentityFromCtx returns the identity attached by NewAuthMiddleware.
// ok is false when the middleware did not run on this route.
func IdentityFromCtx(c *fiber.Ctx) (auth.TokenPayload, bool) {
	id, ok := c.Locals(localsUserID).(int64)
	if !ok {
		return auth.TokenPayload{}, false
	}
	email, _ := c.Locals(localsEmail).(string)
	return auth.TokenPayload{UserID: id, Email: email}, true
}
