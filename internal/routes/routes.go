package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/account"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/auth"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/config"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/currency"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/ledger"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/middleware"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/notification"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/transactions"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Repositories: Postgres when a pool is present, in-memory otherwise.
	var accountRepo account.Repository
	var walletRepo wallet.Repository
	var entryRepo ledger.Repository
	if d.DB != nil {
		accountRepo = account.NewPostgresRepository(d.DB)
		walletRepo = wallet.NewPostgresRepository(d.DB)
		entryRepo = ledger.NewPostgresRepository(d.DB)
	} else {
		accountRepo = account.NewMemoryRepository()
		walletRepo = wallet.NewMemoryRepository()
		entryRepo = ledger.NewMemoryRepository()
	}

	rates := currency.NewTable()
	notifier := notification.NewLoggerNotifier(d.Logger)

	accountSvc := account.NewService(accountRepo)
	walletSvc := wallet.NewService(walletRepo)
	txSvc := transactions.NewService(walletRepo, entryRepo, rates, notifier)
	authSvc := auth.NewService(d.Cfg, accountRepo)

	authHandler := auth.NewHandler(accountSvc, walletSvc, authSvc)
	walletHandler := wallet.NewHandler(walletSvc)
	txHandler := transactions.NewHandler(txSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterRateRoutes(api, rates)
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRateLimit)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	jwtmw := middleware.JWTAuth(authSvc)
	protected := api.Group("", jwtmw)
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/me", func(c *fiber.Ctx) error {
		accID, _ := c.Locals("account_id").(string)
		if accID == "" {
			return c.SendStatus(http.StatusUnauthorized)
		}
		acc, err := accountSvc.Get(c.UserContext(), accID)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "account not found")
		}
		return c.JSON(fiber.Map{
			"account_id": acc.ID,
			"name":       acc.Name,
			"email":      acc.Email,
			"created_at": acc.CreatedAt,
		})
	})
	RegisterWalletRoutes(protected, walletHandler, txHandler)
	RegisterTransactionRoutes(protected, txHandler)

	return nil
}
