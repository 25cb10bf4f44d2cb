package services

import (
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/lk16/reversi-search/internal/config"
)

// Services contains the connections to the external services.
// Either connection is nil when its URL is not configured.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
}

// InitServices connects to all configured services in parallel.
func InitServices(cfg *config.ServerConfig) (*Services, error) {
	services := &Services{}

	var group errgroup.Group

	if cfg.PostgresURL != "" {
		group.Go(func() error {
			postgres, err := InitPostgres(cfg.PostgresURL)
			if err != nil {
				return err
			}
			services.Postgres = postgres
			return nil
		})
	} else {
		slog.Warn("Postgres is not configured, game storage is disabled")
	}

	if cfg.RedisURL != "" {
		group.Go(func() error {
			redis, err := InitRedis(cfg.RedisURL)
			if err != nil {
				return err
			}
			services.Redis = redis
			return nil
		})
	} else {
		slog.Warn("Redis is not configured, move cache and game stats are disabled")
	}

	if err := group.Wait(); err != nil {
		services.Close()
		return nil, err
	}

	return services, nil
}

// Close closes all open connections.
func (s *Services) Close() {
	if s.Postgres != nil {
		if err := s.Postgres.Close(); err != nil {
			slog.Error("Failed to close Postgres", "error", err)
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			slog.Error("Failed to close Redis", "error", err)
		}
	}
}
