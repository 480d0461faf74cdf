package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"errors"
	"fmt"
	"os"

	"recommend-backend/internal/bootstrap"
	"recommend-backend/internal/shared/config"
	"recommend-backend/internal/shared/storage/db"
	"recommend-backend/internal/shared/telemetry"
)

func main() {
	if err := run(context.Background()); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", nil)
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	telemetry.Init(telemetry.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	opts := db.DefaultMigrateOptions().Merge(bootstrap.PoolOverrides(cfg))
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer sqlDB.Close()

	return db.RunMigrations(ctx, sqlDB)
}
