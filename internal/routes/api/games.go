package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lk16/reversi-search/internal/game"
	"github.com/lk16/reversi-search/internal/models"
	"github.com/lk16/reversi-search/internal/repository"
)

const (
	playGameTimeout  = 30 * time.Second
	defaultListLimit = 20
	maxListLimit     = 100
)

// storageError maps repository errors to a response.
func storageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Game not found",
		})
	case errors.Is(err, repository.ErrStorageDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

// PlayGame plays a game between two players and stores it.
func PlayGame(c *fiber.Ctx) error {
	var request models.GameRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	x, o, err := request.Players()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	g, err := game.New(x, o)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), playGameTimeout)
	defer cancel()

	score, err := g.Run(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	record := models.NewGameRecord(request, g.Moves(), score)

	repo := repository.NewGameRepository(c)
	if err = repo.SaveGame(c.Context(), &record); err != nil {
		if !errors.Is(err, repository.ErrStorageDisabled) {
			return storageError(c, err)
		}
		slog.Debug("Game not stored", "id", record.ID, "error", err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// GetGame returns a stored game.
func GetGame(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game id",
		})
	}

	repo := repository.NewGameRepository(c)
	record, err := repo.GetGame(c.Context(), id)
	if err != nil {
		return storageError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(record)
}

// ListGames returns the most recent games.
func ListGames(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "limit must be between 1 and 100",
		})
	}

	repo := repository.NewGameRepository(c)
	records, err := repo.ListGames(c.Context(), limit)
	if err != nil {
		return storageError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(records)
}

// GetGameStats returns the outcome counters.
func GetGameStats(c *fiber.Ctx) error {
	repo := repository.NewGameRepository(c)
	stats, err := repo.GetStats(c.Context())
	if err != nil {
		return storageError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
