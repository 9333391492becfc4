package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"loanapi/internal/adapters/http/middleware"
	"loanapi/internal/adapters/http/routes"
	"loanapi/internal/adapters/messaging/rabbitmq"
	"loanapi/internal/adapters/persistence/models"
	"loanapi/internal/adapters/persistence/repositories"
	"loanapi/internal/config"
	"loanapi/internal/core/services"
	"loanapi/internal/pkg/jwt"
	"loanapi/internal/pkg/logger"
	"loanapi/internal/pkg/password"

	"github.com/gofiber/fiber/v2"

	_ "loanapi/docs" // Swagger docs
)

// @title Loan API
// @version 1.0
// @description Loan requests, review and account administration.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.LogLevel, cfg.AppMode)
	slog.SetDefault(appLogger)

	// A missing signing key is fatal
	tokens, err := jwt.NewIssuer(jwt.IssuerConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})
	if err != nil {
		return fmt.Errorf("JWT_SECRET must be set: %w", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg, appLogger)
	if err != nil {
		return err
	}
	defer config.CloseDatabase(db)

	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	appLogger.Info("database migration completed")

	hasher := password.NewHasher(cfg.PasswordCost)
	appLogger.Info("password hasher ready", "bcrypt_cost", hasher.Cost())

	// Seed the first accountant
	seeder := config.NewSeeder(repositories.NewAccountRepository(db), hasher, appLogger)
	if err := seeder.Run(context.Background(), cfg.Seed); err != nil {
		appLogger.Warn("seeding failed", "error", err)
	}

	// Loan events
	publisher := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, appLogger)
	defer publisher.Close()
	notifier := services.NewNotificationService(publisher, appLogger)

	// Daily loan digest
	if cfg.Digest.Schedule != "" {
		cronService := services.NewCronService(repositories.NewLoanRepository(db), cfg.Digest.Schedule, appLogger)
		if err := cronService.Start(); err != nil {
			return fmt.Errorf("start cron service: %w", err)
		}
		defer cronService.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Loan API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, cfg, routes.Dependencies{
		Tokens:   tokens,
		Hasher:   hasher,
		Notifier: notifier,
		Logger:   appLogger,
	})

	// Graceful shutdown
	go gracefulShutdown(app, appLogger)

	appLogger.Info("server starting", "port", cfg.Port, "mode", cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("error during shutdown", "error", err)
	}
	log.Info("server stopped gracefully")
}
