package presenter

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// Internal logs err and collapses it into a generic 500. No internal
// detail reaches the client.
func Internal(c *fiber.Ctx, err error) error {
	log.Printf("internal error: %s %s: %v", c.Method(), c.Path(), err)
	return Error(c, http.StatusInternalServerError, "internal server error")
}
