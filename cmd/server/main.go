// Package main implements the entry point for the Curve API server,
// the review scheduling engine behind the learning product: it decides
// when each content item comes back for review and serves the review
// queue and dashboard aggregates.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/curvelearn/curve-api/internal/config"
	"github.com/curvelearn/curve-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"Run a database migration command (up, down, status, version, create) and exit",
	)
	migrationName := flag.String(
		"migration-name",
		"",
		"Name of the migration to create (used with -migrate=create)",
	)
	flag.Parse()

	if err := run(*migrateCmd, *migrationName); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run loads configuration, wires the application together and either runs
// migrations or serves HTTP until shutdown.
func run(migrateCmd, migrationName string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	slog.SetDefault(appLogger)

	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	if migrateCmd != "" {
		return runMigrations(cfg, appLogger, migrateCmd, migrationName)
	}

	ctx := context.Background()

	db, err := setupDatabase(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		// The application owns the connection once constructed; on a
		// construction failure it is still ours to close.
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
