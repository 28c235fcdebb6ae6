package scoreboardmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Adding history query indexes...")

		// Per-category timeline, used by filtered history queries.
		_, err := db.NewRaw(`
			CREATE INDEX IF NOT EXISTS history_category_timestamp_idx
			ON history (category_id, timestamp DESC)
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("create history_category_timestamp_idx: %w", err)
		}

		_, err = db.NewRaw(`
			CREATE INDEX IF NOT EXISTS history_timestamp_idx
			ON history (timestamp DESC)
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("create history_timestamp_idx: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping history query indexes...")

		for _, idx := range []string{"history_category_timestamp_idx", "history_timestamp_idx"} {
			if _, err := db.NewRaw("DROP INDEX IF EXISTS ?", bun.Ident(idx)).Exec(ctx); err != nil {
				return fmt.Errorf("drop %s: %w", idx, err)
			}
		}
		return nil
	})
}
