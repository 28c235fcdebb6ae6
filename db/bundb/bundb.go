package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	scoreboardmigrations "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/scoreboard/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// Open connects to Postgres and returns a ready bun.DB.
// The statement timeout is sent as a connection parameter, so it bounds every
// query, including time spent waiting for a row lock.
func Open(ctx context.Context, cfg config.PostgresConfig) (*bun.DB, error) {
	opts := []pgdriver.Option{pgdriver.WithDSN(cfg.DSN)}
	if cfg.StatementTimeout > 0 {
		opts = append(opts, pgdriver.WithConnParams(map[string]interface{}{
			"statement_timeout": strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10),
		}))
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		sqldb.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// NewMigrator returns the migrator for the scoreboard schema.
func NewMigrator(db *bun.DB) *migrate.Migrator {
	return migrate.NewMigrator(db, scoreboardmigrations.Migrations)
}

// Migrate creates the migration tables if needed and applies pending
// migrations under the migrator's advisory lock.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	migrator := NewMigrator(db)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	if err := migrator.Lock(ctx); err != nil {
		return fmt.Errorf("failed to lock migrations: %w", err)
	}
	defer func() {
		if err := migrator.Unlock(ctx); err != nil {
			logger.WarnContext(ctx, "Failed to unlock migrations", "error", err)
		}
	}()

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if group.IsZero() {
		logger.InfoContext(ctx, "No new migrations to run")
	} else {
		logger.InfoContext(ctx, "Migrated database", "group", group.String())
	}
	return nil
}
