package scoreboardmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scoreboard tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			statements := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					id TEXT PRIMARY KEY,
					label TEXT NOT NULL,
					group_name TEXT NOT NULL,
					sort_order INT NOT NULL
				)`,
				`CREATE TABLE IF NOT EXISTS scores (
					category_id TEXT PRIMARY KEY REFERENCES categories(id) ON DELETE CASCADE,
					jared_score INT NOT NULL DEFAULT 0 CHECK (jared_score >= 0),
					steve_score INT NOT NULL DEFAULT 0 CHECK (steve_score >= 0),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				)`,
				`CREATE TABLE IF NOT EXISTS history (
					id BIGSERIAL PRIMARY KEY,
					timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
					player TEXT NOT NULL CHECK (player IN ('jared','steve')),
					score INT NOT NULL,
					previous_score INT NOT NULL,
					source_ip TEXT
				)`,
			}
			for _, stmt := range statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("failed to create scoreboard tables: %w", err)
				}
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scoreboard tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS history, scores, categories`); err != nil {
				return fmt.Errorf("failed to drop scoreboard tables: %w", err)
			}
			return nil
		})
	})
}
