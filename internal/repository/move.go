package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lk16/reversi-search/internal/eval"
	"github.com/lk16/reversi-search/internal/models"
	"github.com/lk16/reversi-search/internal/search"
	"github.com/lk16/reversi-search/internal/services"
)

const MoveCacheTTL = 24 * time.Hour

// MoveRepository caches search results in Redis. Without Redis every lookup misses.
type MoveRepository struct {
	services *services.Services
}

func NewMoveRepository(c *fiber.Ctx) *MoveRepository {
	return &MoveRepository{
		services: c.Locals("services").(*services.Services), //nolint: errcheck
	}
}

func NewMoveRepositoryFromServices(services *services.Services) *MoveRepository {
	return &MoveRepository{
		services: services,
	}
}

// GetMove looks up a cached response. The bool is false on a cache miss.
func (repo *MoveRepository) GetMove(ctx context.Context, request models.MoveRequest) (models.MoveResponse, bool, error) {
	redisConn := repo.services.Redis
	if redisConn == nil {
		return models.MoveResponse{}, false, nil
	}

	jsonData, err := redisConn.Get(ctx, request.CacheKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.MoveResponse{}, false, nil
	}

	if err != nil {
		return models.MoveResponse{}, false, fmt.Errorf("error getting move from Redis: %w", err)
	}

	var response models.MoveResponse
	if err = json.Unmarshal(jsonData, &response); err != nil {
		return models.MoveResponse{}, false, fmt.Errorf("error unmarshaling move: %w", err)
	}

	response.Cached = true
	return response, true, nil
}

// SaveMove stores a response for MoveCacheTTL.
func (repo *MoveRepository) SaveMove(ctx context.Context, request models.MoveRequest, response models.MoveResponse) error {
	redisConn := repo.services.Redis
	if redisConn == nil {
		return nil
	}

	response.Cached = false

	jsonData, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("error marshaling move: %w", err)
	}

	if err = redisConn.Set(ctx, request.CacheKey(), jsonData, MoveCacheTTL).Err(); err != nil {
		return fmt.Errorf("error storing move in Redis: %w", err)
	}

	return nil
}

// BestMove answers request from the cache, or searches and caches the result.
// Cache failures are logged and do not fail the request.
func (repo *MoveRepository) BestMove(ctx context.Context, request models.MoveRequest) (models.MoveResponse, error) {
	board, side, err := request.Parse()
	if err != nil {
		return models.MoveResponse{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	response, found, err := repo.GetMove(ctx, request)
	if err != nil {
		slog.Warn("Move cache lookup failed", "error", err)
	} else if found {
		return response, nil
	}

	evaluator, err := eval.ByName(request.Evaluator)
	if err != nil {
		return models.MoveResponse{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	strategy, err := search.New(request.Algorithm, side, request.Depth, evaluator)
	if err != nil {
		return models.MoveResponse{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	result := strategy.Analyze(board)
	response = models.NewMoveResponse(result, strategy.Nodes())

	if err = repo.SaveMove(ctx, request, response); err != nil {
		slog.Warn("Move cache store failed", "error", err)
	}

	return response, nil
}
