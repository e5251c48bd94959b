package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/robalyx/headline/cmd/db/commands"
	"github.com/robalyx/headline/internal/database/migrations"
	"github.com/robalyx/headline/internal/database/postgres"
	"github.com/robalyx/headline/internal/setup"
	"github.com/robalyx/headline/internal/setup/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	// Setup dependencies
	db, deps, err := setupDependencies()
	if err != nil {
		return fmt.Errorf("failed to setup dependencies: %w", err)
	}
	defer db.Close()

	app := &cli.Command{
		Name:     "db",
		Usage:    "Archive database management tool",
		Commands: commands.MigrationCommands(deps),
	}

	return app.Run(context.Background(), os.Args)
}

// setupDependencies connects to the archive database and creates the migrator.
func setupDependencies() (*bun.DB, *commands.CLIDependencies, error) {
	cfg, path, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger.Debug("Loaded config", zap.String("path", path))

	db := postgres.Open(setup.PostgresConfig(&cfg.PostgreSQL), logger)

	return db, &commands.CLIDependencies{
		Migrator: migrate.NewMigrator(db, migrations.Migrations),
		Logger:   logger,
	}, nil
}
