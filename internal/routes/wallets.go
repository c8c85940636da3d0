package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/transactions"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/wallet"
)

// RegisterWalletRoutes wires wallet CRUD plus the per-wallet statement.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler, tx *transactions.Handler) {
	grp := r.Group("/wallets")
	grp.Post("", h.Create)
	grp.Get("", h.List)
	grp.Get("/:walletId", h.Get)
	grp.Get("/:walletId/transactions", tx.ListByWallet)
}
