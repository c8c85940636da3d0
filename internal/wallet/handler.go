package wallet

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/currency"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

type createRequest struct {
	Currency string `json:"currency" validate:"required,len=3"`
	Name     string `json:"name"`
}

type walletResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Currency  string          `json:"currency"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Primary   bool            `json:"primary"`
	CreatedAt time.Time       `json:"created_at"`
}

func toResponse(w Wallet) walletResponse {
	return walletResponse{
		ID:        w.ID,
		AccountID: w.AccountID,
		Currency:  string(w.Currency),
		Name:      w.Name,
		Balance:   w.Balance,
		Primary:   w.Primary,
		CreatedAt: w.CreatedAt,
	}
}

// Create provisions a wallet for the authenticated account.
func (h *Handler) Create(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)
	if accountID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	w, err := h.service.Create(c.UserContext(), CreateInput{
		AccountID: accountID,
		Currency:  currency.Code(req.Currency),
		Name:      req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedCurrency):
			return fiber.NewError(http.StatusBadRequest, "unsupported currency")
		case errors.Is(err, ErrDuplicateCurrency):
			return fiber.NewError(http.StatusConflict, "wallet for currency already exists")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(toResponse(w))
}

// List returns all wallets of the authenticated account.
func (h *Handler) List(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)
	if accountID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	wallets, err := h.service.ListByAccount(c.UserContext(), accountID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	out := make([]walletResponse, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, toResponse(w))
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"wallets": out})
}

// Get returns a single wallet owned by the authenticated account.
func (h *Handler) Get(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)
	if accountID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	w, err := h.service.Get(c.UserContext(), c.Params("walletId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "wallet not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if w.AccountID != accountID {
		return fiber.NewError(http.StatusForbidden, "wallet not owned by account")
	}

	return c.Status(http.StatusOK).JSON(toResponse(w))
}
