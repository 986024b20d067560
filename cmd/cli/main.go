package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"resourcehub/internal/client/cli"
	"resourcehub/internal/client/config"
	"resourcehub/internal/logging"
)

func main() {
	// A missing .env file is fine; variables can come from the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	level := slog.LevelInfo
	if os.Getenv("RESOURCEHUB_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := logging.NewTextLogger(os.Stderr, level)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
