package handler

import (
	"github.com/egarc258/ecommerce-app/internal/auth/domain"
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the public auth endpoints and returns the admin group so
// callers can hang further admin-only routes off it.
func RegisterRoutes(app *fiber.App, h *AuthHandler) fiber.Router {
	app.Get("/api/health", h.Health)

	auth := app.Group("/api/auth")
	auth.Post("/login", h.Login)
	auth.Post("/register", h.Register)
	auth.Get("/me", h.Me)

	// Admin-only endpoints
	admin := app.Group("/api/admin", h.RequireAuth(), h.RequireRole(domain.RoleAdmin))
	admin.Get("/whoami", h.WhoAmI)

	return admin
}
