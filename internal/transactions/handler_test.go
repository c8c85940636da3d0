package transactions

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/currency"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/ledger"
)

func setupApp(t *testing.T, f *fixture) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("account_id", f.owner)
		return c.Next()
	})
	h := NewHandler(f.svc)
	app.Post("/transactions/transfer", h.Transfer)
	app.Post("/transactions/convert", h.Convert)
	app.Post("/transactions/deposit", h.Deposit)
	app.Get("/transactions", h.List)
	return app
}

func TestDepositEndpoint(t *testing.T) {
	f := newFixture(t)
	w := f.wallet(t, f.owner, currency.USD, "0.00")
	app := setupApp(t, f)

	req := httptest.NewRequest(fiber.MethodPost, "/transactions/deposit",
		strings.NewReader(`{"wallet_id":"`+w.ID+`","amount":"50.00"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var body struct {
		Balance     string `json:"balance"`
		Transaction struct {
			Kind       string `json:"kind"`
			Amount     string `json:"amount"`
			ToCurrency string `json:"to_currency"`
			Status     string `json:"status"`
		} `json:"transaction"`
	}
	require.NoError(t, json.Unmarshal(payload, &body))
	require.Equal(t, "50.00", body.Balance)
	require.Equal(t, string(ledger.KindDeposit), body.Transaction.Kind)
	require.Equal(t, "USD", body.Transaction.ToCurrency)
	require.Equal(t, ledger.StatusCompleted, body.Transaction.Status)
}

func TestTransferEndpointInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	from := f.wallet(t, f.owner, currency.USD, "10.00")
	to := f.wallet(t, f.owner, currency.USD, "0.00")
	app := setupApp(t, f)

	req := httptest.NewRequest(fiber.MethodPost, "/transactions/transfer",
		strings.NewReader(`{"from_wallet_id":"`+from.ID+`","to_wallet_id":"`+to.ID+`","amount":"30.00"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTransferEndpointForeignWalletForbidden(t *testing.T) {
	f := newFixture(t)
	from := f.wallet(t, f.owner, currency.USD, "10.00")
	foreign := f.wallet(t, uuid.NewString(), currency.USD, "0.00")
	app := setupApp(t, f)

	req := httptest.NewRequest(fiber.MethodPost, "/transactions/transfer",
		strings.NewReader(`{"from_wallet_id":"`+from.ID+`","to_wallet_id":"`+foreign.ID+`","amount":"5.00"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestTransferEndpointRejectsMalformedBody(t *testing.T) {
	f := newFixture(t)
	app := setupApp(t, f)

	req := httptest.NewRequest(fiber.MethodPost, "/transactions/transfer",
		strings.NewReader(`{"from_wallet_id":"not-a-uuid","to_wallet_id":"","amount":"5.00"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListEndpoint(t *testing.T) {
	f := newFixture(t)
	w := f.wallet(t, f.owner, currency.USD, "0.00")
	app := setupApp(t, f)

	for _, amount := range []string{"10.00", "20.00"} {
		req := httptest.NewRequest(fiber.MethodPost, "/transactions/deposit",
			strings.NewReader(`{"wallet_id":"`+w.ID+`","amount":"`+amount+`"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/transactions?limit=1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var body struct {
		Transactions []struct {
			Amount string `json:"amount"`
		} `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(payload, &body))
	require.Len(t, body.Transactions, 1)
	require.Equal(t, "20.00", body.Transactions[0].Amount)
}
