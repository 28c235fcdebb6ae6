package testutils

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// appTables lists the scoreboard tables, children first.
var appTables = []string{"history", "scores", "categories"}

// CleanupDatabase truncates all tables to ensure a clean state.
func CleanupDatabase(ctx context.Context, db bun.IDB) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(appTables, ", "))
	if _, err := db.NewRaw(query).Exec(ctx); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

// CountHistory returns the number of ledger rows, optionally for one category.
func CountHistory(ctx context.Context, db bun.IDB, categoryID string) (int, error) {
	q := db.NewSelect().Table("history")
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	return q.Count(ctx)
}
