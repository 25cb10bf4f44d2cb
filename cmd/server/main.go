package main

import (
	"log/slog"
	"os"

	"github.com/lk16/reversi-search/internal"
	"github.com/lk16/reversi-search/internal/config"
)

func main() {
	config.SetLogLevel()

	// Setup app
	app, cfg := internal.SetupApp()

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	if err := app.Listen(address); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
