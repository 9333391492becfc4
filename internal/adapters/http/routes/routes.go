package routes

import (
	"log/slog"

	"loanapi/internal/adapters/http/handlers"
	"loanapi/internal/adapters/http/middleware"
	"loanapi/internal/adapters/persistence/repositories"
	"loanapi/internal/config"
	"loanapi/internal/core/services"
	"loanapi/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Dependencies are built in main and shared by the route handlers
type Dependencies struct {
	Tokens   *jwt.Issuer
	Hasher   services.PasswordHasher
	Notifier services.LoanNotifier
	Logger   *slog.Logger
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, deps Dependencies) {
	// Initialize repositories
	accountRepo := repositories.NewAccountRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	// Initialize services
	credentialService := services.NewCredentialService(accountRepo, deps.Hasher, deps.Tokens, deps.Logger)
	loanService := services.NewLoanService(loanRepo, accountRepo, deps.Notifier, deps.Logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(credentialService)
	accountHandler := handlers.NewAccountHandler(credentialService)
	loanHandler := handlers.NewLoanHandler(loanService)

	auth := middleware.AuthMiddleware(deps.Tokens)

	// ============================================================
	// Public
	// ============================================================
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")
	api.Get("/", healthHandler.APIInfo)

	// ============================================================
	// Auth
	// ============================================================
	authGroup := api.Group("/auth", middleware.NoCacheHeaders())
	authGroup.Post("/register", middleware.AuthRateLimiter(cfg), authHandler.Register)
	authGroup.Post("/login", middleware.AuthRateLimiter(cfg), authHandler.Login)
	authGroup.Get("/me", auth, authHandler.Me)

	// ============================================================
	// Accounts
	// ============================================================
	accounts := api.Group("/accounts", auth, middleware.NoCacheHeaders())
	accounts.Get("/", middleware.AccountantOnly(), accountHandler.ListAccounts)
	accounts.Get("/:id", accountHandler.GetAccount)
	accounts.Patch("/:id/block", middleware.AccountantOnly(), accountHandler.SetBlocked)

	// ============================================================
	// Loans (owner)
	// ============================================================
	loans := api.Group("/loans", auth)
	loans.Post("/", middleware.UserOnly(), loanHandler.CreateLoan)
	loans.Get("/my", middleware.UserOnly(), loanHandler.GetMyLoans)
	loans.Get("/:id", loanHandler.GetLoan)
	loans.Put("/:id", middleware.UserOnly(), loanHandler.UpdateLoan)
	loans.Delete("/:id", middleware.UserOnly(), loanHandler.DeleteLoan)

	// ============================================================
	// Loans (accountant)
	// ============================================================
	accountant := api.Group("/accountant", auth, middleware.AccountantOnly())
	accountant.Get("/loans", loanHandler.ListAllLoans)
	accountant.Put("/loans/:id", loanHandler.AccountantUpdateLoan)
	accountant.Delete("/loans/:id", loanHandler.AccountantDeleteLoan)

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Route not found",
		})
	})
}
