package scoreboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
	"github.com/uptrace/bun"
)

// ScoreboardRepo implements Repository on Postgres through bun.
type ScoreboardRepo struct {
	db *bun.DB
}

// NewRepository creates a Repository backed by db.
func NewRepository(db *bun.DB) Repository {
	return &ScoreboardRepo{db: db}
}

func (r *ScoreboardRepo) conn(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *ScoreboardRepo) SeedCategories(ctx context.Context, db bun.IDB, categories []scoreboarddomain.Category) error {
	if len(categories) == 0 {
		return nil
	}
	db = r.conn(db)

	rows := make([]Category, 0, len(categories))
	entries := make([]ScoreEntry, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, Category{
			ID:        c.ID,
			Label:     c.Label,
			GroupName: c.Group,
			SortOrder: c.Order,
		})
		entries = append(entries, ScoreEntry{CategoryID: c.ID})
	}

	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("label = EXCLUDED.label").
		Set("group_name = EXCLUDED.group_name").
		Set("sort_order = EXCLUDED.sort_order").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("scoreboard.SeedCategories: upsert categories: %w", err)
	}

	_, err = db.NewInsert().
		Model(&entries).
		On("CONFLICT (category_id) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("scoreboard.SeedCategories: insert score entries: %w", err)
	}
	return nil
}

func (r *ScoreboardRepo) ListCategories(ctx context.Context, db bun.IDB) ([]Category, error) {
	var categories []Category
	err := r.conn(db).NewSelect().
		Model(&categories).
		Order("c.sort_order ASC", "c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoreboard.ListCategories: %w", err)
	}
	return categories, nil
}

func (r *ScoreboardRepo) GetEntry(ctx context.Context, db bun.IDB, categoryID string) (*ScoreEntry, error) {
	entry := new(ScoreEntry)
	err := r.conn(db).NewSelect().
		Model(entry).
		Where("s.category_id = ?", categoryID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scoreboard.GetEntry: %w", err)
	}
	return entry, nil
}

func (r *ScoreboardRepo) GetAllEntries(ctx context.Context, db bun.IDB) ([]ScoreEntry, error) {
	var entries []ScoreEntry
	if err := r.conn(db).NewSelect().Model(&entries).Scan(ctx); err != nil {
		return nil, fmt.Errorf("scoreboard.GetAllEntries: %w", err)
	}
	return entries, nil
}

func (r *ScoreboardRepo) UpsertPlayerScore(ctx context.Context, db bun.IDB, categoryID string, player scoreboarddomain.Player, score scoreboarddomain.Score) (*ScoreChange, error) {
	if !player.Valid() {
		return nil, scoreboarddomain.ErrInvalidPlayer
	}
	db = r.conn(db)

	entry, err := r.lockEntry(ctx, db, categoryID)
	if errors.Is(err, ErrNotFound) {
		// Partially seeded store: create the zero entry, then take the lock on it.
		_, err = db.NewInsert().
			Model(&ScoreEntry{CategoryID: categoryID}).
			On("CONFLICT (category_id) DO NOTHING").
			Returning("NULL").
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("scoreboard.UpsertPlayerScore: create entry: %w", err)
		}
		entry, err = r.lockEntry(ctx, db, categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("scoreboard.UpsertPlayerScore: lock entry: %w", err)
	}

	previous := entry.ScoreFor(player)

	// clock_timestamp() is read after the lock is held, so timestamps follow commit order.
	var updatedAt time.Time
	err = db.NewUpdate().
		Model((*ScoreEntry)(nil)).
		Set("? = ?", bun.Ident(player.ScoreColumn()), int32(score)).
		Set("updated_at = clock_timestamp()").
		Where("category_id = ?", categoryID).
		Returning("updated_at").
		Scan(ctx, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRowsAffected
		}
		return nil, fmt.Errorf("scoreboard.UpsertPlayerScore: update: %w", err)
	}

	return &ScoreChange{PreviousScore: previous, UpdatedAt: updatedAt}, nil
}

func (r *ScoreboardRepo) lockEntry(ctx context.Context, db bun.IDB, categoryID string) (*ScoreEntry, error) {
	entry := new(ScoreEntry)
	err := db.NewSelect().
		Model(entry).
		Where("s.category_id = ?", categoryID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (r *ScoreboardRepo) AppendHistory(ctx context.Context, db bun.IDB, record *HistoryRecord) error {
	if record == nil {
		return errors.New("scoreboard.AppendHistory: nil record")
	}
	if _, err := r.conn(db).NewInsert().Model(record).Exec(ctx); err != nil {
		return fmt.Errorf("scoreboard.AppendHistory: %w", err)
	}
	return nil
}

func (r *ScoreboardRepo) QueryHistory(ctx context.Context, db bun.IDB, filter HistoryFilter) ([]HistoryRecord, error) {
	records := []HistoryRecord{}
	// bun drops LIMIT 0, so an empty page is answered without a query.
	if filter.Limit <= 0 {
		return records, nil
	}

	q := r.conn(db).NewSelect().
		Model(&records).
		Order("h.timestamp DESC", "h.id DESC").
		Limit(filter.Limit)
	if filter.CategoryID != "" {
		q = q.Where("h.category_id = ?", filter.CategoryID)
	}
	if filter.Player != "" {
		q = q.Where("h.player = ?", filter.Player)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("scoreboard.QueryHistory: %w", err)
	}
	return records, nil
}

func (r *ScoreboardRepo) Ping(ctx context.Context) error {
	if r.db == nil {
		return errors.New("scoreboard.Ping: no database")
	}
	return r.db.PingContext(ctx)
}
