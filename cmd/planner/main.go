// Package main is the entry point for the trip planner.
// Its sole responsibility is wiring dependencies together and dispatching
// subcommands. No business logic belongs here.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/logging"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "planner",
		Usage: "Plan a trip: pick a destination and dates, invite guests, create it.",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			currentTripCommand(),
			forgetTripCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("planner failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// setup loads configuration and installs the configured logger as default.
func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
