package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lk16/reversi-search/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.AuthOrToken())

	// Move routes
	apiGroup.Post("/move", GetMove)

	// Game routes
	apiGroup.Post("/games", PlayGame)
	apiGroup.Get("/games", ListGames)
	apiGroup.Get("/games/stats", GetGameStats)
	apiGroup.Get("/games/:id", GetGame)
}
