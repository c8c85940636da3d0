package transactions

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/ledger"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/metrics"
)

// Handler exposes the ledger operation endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a transactions handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

type transferRequest struct {
	FromWalletID string          `json:"from_wallet_id" validate:"required,uuid4"`
	ToWalletID   string          `json:"to_wallet_id" validate:"required,uuid4"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
}

type convertRequest struct {
	FromWalletID string          `json:"from_wallet_id" validate:"required,uuid4"`
	ToWalletID   string          `json:"to_wallet_id" validate:"required,uuid4"`
	Amount       decimal.Decimal `json:"amount"`
}

type depositRequest struct {
	WalletID string          `json:"wallet_id" validate:"required,uuid4"`
	Amount   decimal.Decimal `json:"amount"`
}

type entryResponse struct {
	ID           string           `json:"id"`
	FromWalletID string           `json:"from_wallet_id,omitempty"`
	ToWalletID   string           `json:"to_wallet_id,omitempty"`
	Kind         string           `json:"kind"`
	Amount       decimal.Decimal  `json:"amount"`
	FromCurrency string           `json:"from_currency,omitempty"`
	ToCurrency   string           `json:"to_currency,omitempty"`
	Rate         *decimal.Decimal `json:"rate,omitempty"`
	Description  string           `json:"description"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
}

func toEntryResponse(e ledger.Entry) entryResponse {
	resp := entryResponse{
		ID:           e.ID,
		FromWalletID: e.FromWalletID,
		ToWalletID:   e.ToWalletID,
		Kind:         string(e.Kind),
		Amount:       e.Amount,
		FromCurrency: string(e.FromCurrency),
		ToCurrency:   string(e.ToCurrency),
		Description:  e.Description,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
	}
	if e.Rate.Valid {
		rate := e.Rate.Decimal
		resp.Rate = &rate
	}
	return resp
}

// Transfer processes a same-currency wallet-to-wallet transfer.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	actorID, _ := c.Locals("account_id").(string)
	if actorID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Transfer(c.UserContext(), TransferInput{
		ActorID:      actorID,
		FromWalletID: req.FromWalletID,
		ToWalletID:   req.ToWalletID,
		Amount:       req.Amount,
		Description:  req.Description,
	})
	if err != nil {
		metrics.RecordOperation(string(ledger.KindTransfer), "failure")
		return statusError(err)
	}
	metrics.RecordOperation(string(ledger.KindTransfer), "success")

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction":  toEntryResponse(res.Entry),
		"from_balance": res.FromBalance,
		"to_balance":   res.ToBalance,
	})
}

// Convert processes a cross-currency conversion.
func (h *Handler) Convert(c *fiber.Ctx) error {
	actorID, _ := c.Locals("account_id").(string)
	if actorID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	var req convertRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Convert(c.UserContext(), ConvertInput{
		ActorID:      actorID,
		FromWalletID: req.FromWalletID,
		ToWalletID:   req.ToWalletID,
		Amount:       req.Amount,
	})
	if err != nil {
		metrics.RecordOperation(string(ledger.KindConversion), "failure")
		return statusError(err)
	}
	metrics.RecordOperation(string(ledger.KindConversion), "success")

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction":      toEntryResponse(res.Entry),
		"rate":             res.Rate,
		"converted_amount": res.ConvertedAmount,
		"from_balance":     res.FromBalance,
		"to_balance":       res.ToBalance,
	})
}

// Deposit credits a wallet of the authenticated account.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	actorID, _ := c.Locals("account_id").(string)
	if actorID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	var req depositRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Deposit(c.UserContext(), DepositInput{
		ActorID:  actorID,
		WalletID: req.WalletID,
		Amount:   req.Amount,
	})
	if err != nil {
		metrics.RecordOperation(string(ledger.KindDeposit), "failure")
		return statusError(err)
	}
	metrics.RecordOperation(string(ledger.KindDeposit), "success")

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction": toEntryResponse(res.Entry),
		"balance":     res.Balance,
	})
}

// List returns the account's ledger entries, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	actorID, _ := c.Locals("account_id").(string)
	if actorID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	entries, err := h.service.History(c.UserContext(), actorID, parseLimit(c))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"transactions": toEntryResponses(entries)})
}

// ListByWallet returns entries touching one wallet of the account.
func (h *Handler) ListByWallet(c *fiber.Ctx) error {
	actorID, _ := c.Locals("account_id").(string)
	if actorID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	entries, err := h.service.WalletHistory(c.UserContext(), actorID, c.Params("walletId"), parseLimit(c))
	if err != nil {
		return statusError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"transactions": toEntryResponses(entries)})
}

func toEntryResponses(entries []ledger.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out
}

func parseLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func statusError(err error) error {
	switch {
	case errors.Is(err, ErrWalletNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotOwner):
		return fiber.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrSameWallet),
		errors.Is(err, ErrCurrencyMismatch),
		errors.Is(err, ErrRateUnavailable),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInsufficientFunds):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
