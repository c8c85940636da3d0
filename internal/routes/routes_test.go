package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/config"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/logging"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		AppName:         "wallet-api-test",
		AppEnv:          "dev",
		Port:            "0",
		JWTSecret:       "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		ShutdownPeriod:  time.Second,
		IdempotencyTTL:  time.Minute,
		LoginRateLimit:  5,
	}

	app := fiber.New()
	require.NoError(t, Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	// Error responses are plain text, so decoding is best effort.
	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func register(t *testing.T, app *fiber.App, name, email string) (token, walletID string) {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, status)
	token, _ = body["access_token"].(string)
	walletID, _ = body["wallet_id"].(string)
	require.NotEmpty(t, token)
	require.NotEmpty(t, walletID)
	return token, walletID
}

func TestRegisterLoginAndMe(t *testing.T) {
	app := newTestApp(t)

	token, _ := register(t, app, "Alice", "alice@example.com")

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "alice@example.com", body["email"])

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body["access_token"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestDepositTransferConvertFlow(t *testing.T) {
	app := newTestApp(t)

	token, usdWallet := register(t, app, "Alice", "alice@example.com")

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/wallets", token, map[string]any{
		"currency": "EUR",
	})
	require.Equal(t, http.StatusCreated, status)
	eurWallet, _ := body["id"].(string)
	require.NotEmpty(t, eurWallet)

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/transactions/deposit", token, map[string]any{
		"wallet_id": usdWallet,
		"amount":    "100",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "100.00", body["balance"])

	// USD to EUR at the quoted 0.915.
	status, body = doJSON(t, app, http.MethodPost, "/api/v1/transactions/convert", token, map[string]any{
		"from_wallet_id": usdWallet,
		"to_wallet_id":   eurWallet,
		"amount":         "40",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "36.60", body["converted_amount"])
	require.Equal(t, "0.915", body["rate"])

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/wallets/"+usdWallet, token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "60.00", body["balance"])

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/transactions", token, nil)
	require.Equal(t, http.StatusOK, status)
	entries, _ := body["transactions"].([]any)
	require.Len(t, entries, 2)
	newest, _ := entries[0].(map[string]any)
	require.Equal(t, "conversion", newest["kind"])

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/wallets/"+eurWallet+"/transactions", token, nil)
	require.Equal(t, http.StatusOK, status)
	entries, _ = body["transactions"].([]any)
	require.Len(t, entries, 1)
}

func TestTransferBetweenAccounts(t *testing.T) {
	app := newTestApp(t)

	aliceToken, aliceUSD := register(t, app, "Alice", "alice@example.com")
	bobToken, bobUSD := register(t, app, "Bob", "bob@example.com")

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/transactions/deposit", aliceToken, map[string]any{
		"wallet_id": aliceUSD,
		"amount":    "75",
	})
	require.Equal(t, http.StatusCreated, status)

	// Transfers only move money between the caller's own wallets.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/transactions/transfer", aliceToken, map[string]any{
		"from_wallet_id": aliceUSD,
		"to_wallet_id":   bobUSD,
		"amount":         "10",
	})
	require.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/wallets/"+aliceUSD, bobToken, nil)
	require.Equal(t, http.StatusForbidden, status)
}

func TestRatesAndHealthArePublic(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/rates", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body["rates"])
	require.NotEmpty(t, body["currencies"])

	status, _ = doJSON(t, app, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/ping", "", nil)
	require.Equal(t, http.StatusOK, status)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	app := newTestApp(t)

	token, _ := register(t, app, "Alice", "alice@example.com")

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, status)
}
