package routes

import (
	"net/http"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/currency"
)

// RegisterRateRoutes publishes the static conversion table.
func RegisterRateRoutes(r fiber.Router, rates *currency.Table) {
	r.Get("/rates", func(c *fiber.Ctx) error {
		pairs := rates.Pairs()
		sort.Slice(pairs, func(i, j int) bool {
			if pairs[i].From != pairs[j].From {
				return pairs[i].From < pairs[j].From
			}
			return pairs[i].To < pairs[j].To
		})

		type rateResponse struct {
			From string `json:"from"`
			To   string `json:"to"`
			Rate string `json:"rate"`
		}
		out := make([]rateResponse, 0, len(pairs))
		for _, p := range pairs {
			out = append(out, rateResponse{
				From: string(p.From),
				To:   string(p.To),
				Rate: p.Rate.String(),
			})
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"currencies": currency.Codes(),
			"rates":      out,
		})
	})
}
