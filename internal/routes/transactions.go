package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/transactions"
)

// RegisterTransactionRoutes wires money movement and history endpoints.
func RegisterTransactionRoutes(r fiber.Router, h *transactions.Handler) {
	grp := r.Group("/transactions")
	grp.Get("", h.List)
	grp.Post("/transfer", h.Transfer)
	grp.Post("/convert", h.Convert)
	grp.Post("/deposit", h.Deposit)
}
