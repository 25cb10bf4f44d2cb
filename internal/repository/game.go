package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lk16/reversi-search/internal/game"
	"github.com/lk16/reversi-search/internal/models"
	"github.com/lk16/reversi-search/internal/services"
)

const gameStatsKey = "game_stats"

const schema = `
	CREATE TABLE IF NOT EXISTS games (
		id UUID PRIMARY KEY,
		x_player TEXT NOT NULL,
		o_player TEXT NOT NULL,
		moves TEXT[] NOT NULL,
		x_discs INT NOT NULL,
		o_discs INT NOT NULL,
		outcome TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// GameRepository stores played games in Postgres and keeps outcome counters in Redis.
type GameRepository struct {
	services *services.Services
}

func NewGameRepository(c *fiber.Ctx) *GameRepository {
	return &GameRepository{
		services: c.Locals("services").(*services.Services), //nolint: errcheck
	}
}

func NewGameRepositoryFromServices(services *services.Services) *GameRepository {
	return &GameRepository{
		services: services,
	}
}

// EnsureSchema creates the games table if it does not exist.
func (repo *GameRepository) EnsureSchema(ctx context.Context) error {
	pgConn := repo.services.Postgres
	if pgConn == nil {
		return ErrStorageDisabled
	}

	if _, err := pgConn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating games table: %w", err)
	}

	return nil
}

// SaveGame inserts a finished game and bumps the outcome counter of its result.
func (repo *GameRepository) SaveGame(ctx context.Context, record *models.GameRecord) error {
	pgConn := repo.services.Postgres
	if pgConn == nil {
		return ErrStorageDisabled
	}

	query := `
		INSERT INTO games (id, x_player, o_player, moves, x_discs, o_discs, outcome)
		VALUES (:id, :x_player, :o_player, :moves, :x_discs, :o_discs, :outcome)
		RETURNING created_at
	`

	rows, err := pgConn.NamedQueryContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("error saving game: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err = rows.Scan(&record.CreatedAt); err != nil {
			return fmt.Errorf("error scanning created_at: %w", err)
		}
	}

	redisConn := repo.services.Redis
	if redisConn == nil {
		return nil
	}

	if err = redisConn.HIncrBy(ctx, gameStatsKey, record.Outcome, 1).Err(); err != nil {
		return fmt.Errorf("error updating Redis stats: %w", err)
	}

	return nil
}

// GetGame returns the game with the given id.
func (repo *GameRepository) GetGame(ctx context.Context, id uuid.UUID) (models.GameRecord, error) {
	pgConn := repo.services.Postgres
	if pgConn == nil {
		return models.GameRecord{}, ErrStorageDisabled
	}

	query := `
		SELECT id, x_player, o_player, moves, x_discs, o_discs, outcome, created_at
		FROM games
		WHERE id = $1
	`

	var record models.GameRecord
	err := pgConn.GetContext(ctx, &record, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GameRecord{}, ErrGameNotFound
	}

	if err != nil {
		return models.GameRecord{}, fmt.Errorf("error getting game: %w", err)
	}

	return record, nil
}

// ListGames returns the most recent games, newest first.
func (repo *GameRepository) ListGames(ctx context.Context, limit int) ([]models.GameRecord, error) {
	pgConn := repo.services.Postgres
	if pgConn == nil {
		return nil, ErrStorageDisabled
	}

	query := `
		SELECT id, x_player, o_player, moves, x_discs, o_discs, outcome, created_at
		FROM games
		ORDER BY created_at DESC
		LIMIT $1
	`

	records := make([]models.GameRecord, 0)
	if err := pgConn.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("error listing games: %w", err)
	}

	return records, nil
}

func (repo *GameRepository) buildInitialGameStats(ctx context.Context) error {
	pgConn := repo.services.Postgres
	redisConn := repo.services.Redis

	query := `
		SELECT outcome, count(*)
		FROM games
		GROUP BY outcome
	`

	type statRow struct {
		Outcome string `db:"outcome"`
		Count   int    `db:"count"`
	}

	var stats []statRow
	if err := pgConn.SelectContext(ctx, &stats, query); err != nil {
		return fmt.Errorf("error loading game stats: %w", err)
	}

	if len(stats) == 0 {
		return nil
	}

	statsMap := make(map[string]interface{})
	for _, stat := range stats {
		statsMap[stat.Outcome] = stat.Count
	}

	if err := redisConn.HSet(ctx, gameStatsKey, statsMap).Err(); err != nil {
		return fmt.Errorf("error storing game stats in Redis: %w", err)
	}

	return nil
}

// GetStats returns the outcome counters. They are rebuilt from Postgres when Redis has none.
func (repo *GameRepository) GetStats(ctx context.Context) (models.GameStats, error) {
	redisConn := repo.services.Redis
	if redisConn == nil {
		return repo.countStats(ctx)
	}

	stats, err := redisConn.HGetAll(ctx, gameStatsKey).Result()
	if err != nil {
		return models.GameStats{}, fmt.Errorf("error getting game stats from Redis: %w", err)
	}

	if len(stats) == 0 && repo.services.Postgres != nil {
		if err = repo.buildInitialGameStats(ctx); err != nil {
			return models.GameStats{}, fmt.Errorf("error building initial game stats: %w", err)
		}

		stats, err = redisConn.HGetAll(ctx, gameStatsKey).Result()
		if err != nil {
			return models.GameStats{}, fmt.Errorf("error getting game stats from Redis after build: %w", err)
		}
	}

	return parseGameStats(stats)
}

// countStats reads the counters straight from Postgres.
func (repo *GameRepository) countStats(ctx context.Context) (models.GameStats, error) {
	pgConn := repo.services.Postgres
	if pgConn == nil {
		return models.GameStats{}, ErrStorageDisabled
	}

	query := `
		SELECT
			count(*) FILTER (WHERE outcome = $1) AS x_wins,
			count(*) FILTER (WHERE outcome = $2) AS o_wins,
			count(*) FILTER (WHERE outcome = $3) AS draws
		FROM games
	`

	var stats models.GameStats
	err := pgConn.QueryRowxContext(ctx, query, string(game.XWin), string(game.OWin), string(game.Draw)).Scan(&stats.XWins, &stats.OWins, &stats.Draws)
	if err != nil {
		return models.GameStats{}, fmt.Errorf("error counting games: %w", err)
	}

	return stats, nil
}

func parseGameStats(stats map[string]string) (models.GameStats, error) {
	var gameStats models.GameStats

	for key, value := range stats {
		count, err := strconv.Atoi(value)
		if err != nil {
			return models.GameStats{}, fmt.Errorf("error parsing game stats value: %w", err)
		}

		switch game.Outcome(key) {
		case game.XWin:
			gameStats.XWins = count
		case game.OWin:
			gameStats.OWins = count
		case game.Draw:
			gameStats.Draws = count
		default:
			return models.GameStats{}, fmt.Errorf("unknown outcome in game stats: %q", key)
		}
	}

	return gameStats, nil
}
