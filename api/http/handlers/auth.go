package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vkuzn/unimarket/api/http/presenter"
	"github.com/vkuzn/unimarket/pkg/auth"
	"github.com/vkuzn/unimarket/pkg/security/jwt"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func authResultJSON(result auth.AuthResult) fiber.Map {
	return fiber.Map{
		"user":  result.User,
		"token": result.Token,
	}
}

// Signup registers a new account and returns it with a fresh token.
// @Summary Sign up
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "signup payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.useCase.Signup(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			return presenter.Error(c, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, auth.ErrPasswordTooShort):
			return presenter.Error(c, http.StatusBadRequest,
				fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLen))
		case errors.Is(err, auth.ErrEmailNotAllowed):
			return presenter.Error(c, http.StatusBadRequest, "only university email addresses are allowed")
		case errors.Is(err, auth.ErrUserAlreadyExists):
			return presenter.Error(c, http.StatusConflict, "email already registered")
		default:
			return presenter.Internal(c, err)
		}
	}

	return presenter.JSON(c, http.StatusCreated, authResultJSON(result))
}

// Login authenticates an existing account.
// @Summary Log in
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			return presenter.Error(c, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, auth.ErrInvalidCredentials):
			// One message for unknown email and wrong password alike.
			return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
		default:
			return presenter.Internal(c, err)
		}
	}

	return presenter.JSON(c, http.StatusOK, authResultJSON(result))
}

// Me echoes the identity resolved from the bearer token.
// @Summary Current identity
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := jwt.IdentityFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"user": identity})
}
