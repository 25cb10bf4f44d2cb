package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lk16/reversi-search/internal/models"
	"github.com/lk16/reversi-search/internal/repository"
)

// GetMove searches the best move for a position.
func GetMove(c *fiber.Ctx) error {
	var request models.MoveRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	repo := repository.NewMoveRepository(c)
	response, err := repo.BestMove(c.Context(), request)
	if errors.Is(err, repository.ErrInvalidRequest) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(response)
}
