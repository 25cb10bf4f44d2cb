package internal

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lk16/reversi-search/internal/config"
	"github.com/lk16/reversi-search/internal/middleware"
	"github.com/lk16/reversi-search/internal/repository"
	"github.com/lk16/reversi-search/internal/routes"
	"github.com/lk16/reversi-search/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 40 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 1024 * 1024 // 1MB
	schemaTimeout       = 10 * time.Second
)

// SetupApp loads the configuration from the environment and connects to all services.
func SetupApp() (*fiber.App, *config.ServerConfig) {
	cfg := config.LoadServerConfig()

	services, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	if services.Postgres != nil {
		ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
		defer cancel()

		if err = repository.NewGameRepositoryFromServices(services).EnsureSchema(ctx); err != nil {
			slog.Error("Failed to create schema", "error", err)
			os.Exit(1)
		}
	}

	return BuildApp(cfg, services), cfg
}

// BuildApp creates the Fiber app with all middleware and routes.
func BuildApp(cfg *config.ServerConfig, services *services.Services) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Setup connections to external services and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("services", services)
		c.Locals("config", cfg)
		return c.Next()
	})

	// Add logging middleware
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app)

	return app
}
