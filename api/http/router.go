package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vkuzn/unimarket/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, health *handlers.HealthHandler,
	products *handlers.ProductHandler, categories *handlers.CategoryHandler, authMW fiber.Handler) {

	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	a := app.Group("/auth")
	a.Post("/signup", auth.Signup)
	a.Post("/login", auth.Login)
	a.Get("/me", authMW, auth.Me)

	p := app.Group("/products")
	p.Get("/", products.List)
	// "/me" must come before "/:id"
	p.Get("/me", authMW, products.ListMine)
	p.Get("/:id", products.GetByID)
	p.Post("/", authMW, products.Create)
	p.Put("/:id", authMW, products.Update)
	p.Patch("/:id/sold", authMW, products.MarkSold)
	p.Delete("/:id", authMW, products.Delete)

	app.Get("/categories", categories.List)
}
