package config

import (
	"log/slog"
	"os"
	"strconv"
)

// ServerConfig holds all configuration values loaded from environment variables.
// RedisURL and PostgresURL are optional, the features that need them are disabled when empty.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string
	PostgresURL       string
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string
	Prefork           bool
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:        getEnvMust("FLIPPY_SERVER_HOST"),
		ServerPort:        getEnvMust("FLIPPY_SERVER_PORT"),
		RedisURL:          getEnv("FLIPPY_REDIS_URL", ""),
		PostgresURL:       getEnv("FLIPPY_POSTGRES_URL", ""),
		BasicAuthUsername: getEnvMust("FLIPPY_SERVER_BASIC_AUTH_USER"),
		BasicAuthPassword: getEnvMust("FLIPPY_SERVER_BASIC_AUTH_PASS"),
		Token:             getEnvMust("FLIPPY_SERVER_TOKEN"),
		Prefork:           getEnvBool("FLIPPY_SERVER_PREFORK", false),
	}
}

// ClientConfig is used by CLIs that ask a running server for moves.
type ClientConfig struct {
	ServerURL string
	Token     string
}

func LoadClientConfig() *ClientConfig {
	return &ClientConfig{
		ServerURL: getEnvMust("FLIPPY_SERVER_URL"),
		Token:     getEnvMust("FLIPPY_SERVER_TOKEN"),
	}
}

// SelfPlayConfig holds defaults for the selfplay command, flags override them.
type SelfPlayConfig struct {
	Games      int
	RandChance float64
}

func LoadSelfPlayConfig() *SelfPlayConfig {
	return &SelfPlayConfig{
		Games:      getEnvInt("FLIPPY_SELFPLAY_GAMES", 1),
		RandChance: getEnvFloat("FLIPPY_SELFPLAY_RAND_CHANCE", 0),
	}
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

// getEnv returns the environment variable or fallback when it is not set.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Error("Cannot load environment variable, it must be an integer", "key", key, "value", value)
		os.Exit(1)
	}

	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		slog.Error("Cannot load environment variable, it must be a number", "key", key, "value", value)
		os.Exit(1)
	}

	return parsed
}
