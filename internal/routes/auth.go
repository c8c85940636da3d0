package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/auth"
)

// RegisterAuthRoutes wires the public authentication endpoints. Logout is
// mounted separately under the protected group because it needs the caller's
// identity.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, loginLimiter fiber.Handler) {
	grp := r.Group("/auth")
	grp.Post("/register", h.Register)
	grp.Post("/login", loginLimiter, h.Login)
	grp.Post("/refresh", h.Refresh)
}
