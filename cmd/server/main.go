// Package main implements the entry point for the Cohort Tools API server,
// which manages bootcamp cohorts and students and issues bearer tokens.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/joho/godotenv"

	"github.com/phrazzld/cohort-tools-api/internal/config"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("cohort-tools-api: %v", err)
	}
}

// run loads configuration, connects the backends and serves until shutdown.
func run(ctx context.Context) error {
	cfg, err := loadConfig(".env")
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)
	l.Debug("Optional integrations",
		"rate_limit", cfg.RateLimit.Enabled(),
		"nats", cfg.Events.NATSURL != "")

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadConfig reads envFile into the environment when it exists, then loads
// the configuration. Variables already set in the environment win.
func loadConfig(envFile string) (*config.Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
