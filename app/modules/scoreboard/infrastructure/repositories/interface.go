package scoreboarddb

import (
	"context"

	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
	"github.com/uptrace/bun"
)

// Repository defines the contract for score and history persistence.
// Every method takes the bun.IDB to run on so callers can pass a transaction;
// a nil db falls back to the repository's own connection pool.
//
// Error semantics:
//   - ErrNotFound: the score entry does not exist
//   - ErrNoRowsAffected: UPDATE matched no rows
//   - Other errors: infrastructure failures (connection, query, constraint)
type Repository interface {
	// SeedCategories upserts the category table and inserts a zero entry for
	// every category that has none. Existing scores are never touched.
	SeedCategories(ctx context.Context, db bun.IDB, categories []scoreboarddomain.Category) error

	// ListCategories returns all categories ordered by sort_order ascending.
	ListCategories(ctx context.Context, db bun.IDB) ([]Category, error)

	// GetEntry returns the score entry for one category.
	GetEntry(ctx context.Context, db bun.IDB, categoryID string) (*ScoreEntry, error)

	// GetAllEntries returns every score entry.
	GetAllEntries(ctx context.Context, db bun.IDB) ([]ScoreEntry, error)

	// UpsertPlayerScore locks the category's entry (creating a zero entry if
	// missing), writes the player's new score and returns the previous value.
	// Must be called inside a transaction; the row lock is held until it ends.
	UpsertPlayerScore(ctx context.Context, db bun.IDB, categoryID string, player scoreboarddomain.Player, score scoreboarddomain.Score) (*ScoreChange, error)

	// AppendHistory inserts one ledger record.
	AppendHistory(ctx context.Context, db bun.IDB, record *HistoryRecord) error

	// QueryHistory returns ledger records newest first.
	QueryHistory(ctx context.Context, db bun.IDB, filter HistoryFilter) ([]HistoryRecord, error)

	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error
}
