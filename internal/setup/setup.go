// Package setup wires configuration, logging, storage and notification sinks into a running engine.
package setup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database"
	"github.com/robalyx/headline/internal/database/dbretry"
	"github.com/robalyx/headline/internal/database/migrations"
	"github.com/robalyx/headline/internal/database/postgres"
	"github.com/robalyx/headline/internal/notify"
	"github.com/robalyx/headline/internal/redis"
	"github.com/robalyx/headline/internal/setup/config"
	"github.com/robalyx/headline/internal/setup/telemetry"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

// Version is reported with traces and exports.
const Version = "0.1.0"

// ErrPendingMigrations is returned when the archive schema is behind the binary.
var ErrPendingMigrations = errors.New("archive database has pending migrations; run `db migrate`")

// App bundles all core dependencies and services needed by the application.
type App struct {
	Config       *config.Config     // Application configuration
	Clock        clock.Clock        // Time source shared by the engine and notifiers
	Logger       *zap.Logger        // Main application logger
	DBLogger     *zap.Logger        // Database-specific logger
	DB           database.Client    // Story moderation engine
	ArchiveDB    *bun.DB            // Archive connection, nil when the archive is disabled
	RedisManager *redis.Manager     // Redis connection manager, nil when Redis notifications are disabled
	LogManager   *telemetry.Manager // Log and trace management
}

// InitializeApp bootstraps all application dependencies in order.
// A nil clk uses the system clock. Extra options are applied after the configured ones.
func InitializeApp(
	ctx context.Context, cfg *config.Config, clk clock.Clock, opts ...database.Option,
) (*App, error) {
	if clk == nil {
		clk = clock.System{}
	}

	logManager := telemetry.NewManager(&cfg.Debug, &cfg.Telemetry)

	logger, dbLogger, err := logManager.GetLoggers()
	if err != nil {
		return nil, err
	}

	if logManager.StartTracing(Version) {
		logger.Info("Tracing enabled", zap.String("service", cfg.Telemetry.ServiceName))
	}

	app := &App{
		Config:     cfg,
		Clock:      clk,
		Logger:     logger,
		DBLogger:   dbLogger.Named("database"),
		LogManager: logManager,
	}

	base := []database.Option{database.WithClock(clk)}

	sinks, err := app.notificationSinks()
	if err != nil {
		app.Cleanup(ctx)
		return nil, err
	}
	base = append(base, database.WithNotifier(notify.NewDispatcher(logger, cfg.Notify.Timeout, sinks...)))

	if cfg.PostgreSQL.Enabled {
		db, err := OpenArchive(ctx, &cfg.PostgreSQL, app.DBLogger)
		if err != nil {
			app.Cleanup(ctx)
			return nil, err
		}
		app.ArchiveDB = db

		base = append(base,
			database.WithArchive(postgres.NewArchive(db, RetryPolicy(&cfg.Retry), app.DBLogger)),
			database.WithUnitOfWork(postgres.NewUnitOfWork(db, app.DBLogger)))
	}

	app.DB = database.NewClient(
		database.Settings{Rules: cfg.Rules(), Weights: cfg.Weights()},
		logger,
		append(base, opts...)...,
	)

	return app, nil
}

// OpenArchive connects to the archive database and verifies its schema is current.
func OpenArchive(ctx context.Context, cfg *config.PostgreSQL, logger *zap.Logger) (*bun.DB, error) {
	db := postgres.Open(PostgresConfig(cfg), logger)

	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize migrations: %w", err)
	}

	ms, err := migrator.MigrationsWithStatus(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check migration status: %w", err)
	}
	if unapplied := ms.Unapplied(); len(unapplied) > 0 {
		db.Close()
		return nil, fmt.Errorf("%w: %s", ErrPendingMigrations, unapplied.String())
	}

	return db, nil
}

// PostgresConfig converts the configuration section into connection settings.
func PostgresConfig(cfg *config.PostgreSQL) postgres.Config {
	return postgres.Config{
		Host:         cfg.Host,
		Port:         cfg.Port,
		User:         cfg.User,
		Password:     cfg.Password,
		DBName:       cfg.DBName,
		MaxOpenConns: cfg.MaxOpenConns,
		MaxIdleConns: cfg.MaxIdleConns,
		MaxLifetime:  time.Duration(cfg.MaxLifetime) * time.Minute,
		MaxIdleTime:  time.Duration(cfg.MaxIdleTime) * time.Minute,
	}
}

// RetryPolicy converts the configuration section into an archive retry policy.
func RetryPolicy(cfg *config.Retry) dbretry.Policy {
	return dbretry.Policy{
		MaxElapsedTime:  time.Duration(cfg.MaxElapsed) * time.Millisecond,
		InitialInterval: time.Duration(cfg.Delay) * time.Millisecond,
		MaxInterval:     time.Duration(cfg.MaxDelay) * time.Millisecond,
		MaxRetries:      cfg.MaxRetries,
	}
}

// notificationSinks builds the configured notification sinks.
func (s *App) notificationSinks() ([]notify.Sink, error) {
	var sinks []notify.Sink

	if s.Config.Notify.Log {
		sinks = append(sinks, notify.NewLogNotifier(s.Logger))
	}

	if s.Config.Notify.Redis {
		s.RedisManager = redis.NewManager(&s.Config.Redis, s.Logger)

		client, err := s.RedisManager.GetClient(redis.NotifyDBIndex)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, redis.NewNotifier(client, s.Clock, s.Config.Notify.QueueCap, s.Logger))
	}

	return sinks, nil
}

// Cleanup shuts down all components in reverse initialization order.
// Errors are logged so every component gets a cleanup attempt.
func (s *App) Cleanup(ctx context.Context) {
	if err := s.LogManager.Stop(ctx); err != nil {
		s.Logger.Error("Failed to flush traces", zap.Error(err))
	}

	if s.ArchiveDB != nil {
		if err := s.ArchiveDB.Close(); err != nil {
			s.Logger.Error("Failed to close archive database", zap.Error(err))
		}
	}

	if s.RedisManager != nil {
		s.RedisManager.Close()
	}

	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}
}
