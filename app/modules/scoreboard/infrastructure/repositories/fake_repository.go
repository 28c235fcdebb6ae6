package scoreboarddb

import (
	"context"

	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	SeedCategoriesFn    func(ctx context.Context, db bun.IDB, categories []scoreboarddomain.Category) error
	ListCategoriesFn    func(ctx context.Context, db bun.IDB) ([]Category, error)
	GetEntryFn          func(ctx context.Context, db bun.IDB, categoryID string) (*ScoreEntry, error)
	GetAllEntriesFn     func(ctx context.Context, db bun.IDB) ([]ScoreEntry, error)
	UpsertPlayerScoreFn func(ctx context.Context, db bun.IDB, categoryID string, player scoreboarddomain.Player, score scoreboarddomain.Score) (*ScoreChange, error)
	AppendHistoryFn     func(ctx context.Context, db bun.IDB, record *HistoryRecord) error
	QueryHistoryFn      func(ctx context.Context, db bun.IDB, filter HistoryFilter) ([]HistoryRecord, error)
	PingFn              func(ctx context.Context) error
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) SeedCategories(ctx context.Context, db bun.IDB, categories []scoreboarddomain.Category) error {
	if f.SeedCategoriesFn != nil {
		return f.SeedCategoriesFn(ctx, db, categories)
	}
	return nil
}

func (f *FakeRepository) ListCategories(ctx context.Context, db bun.IDB) ([]Category, error) {
	if f.ListCategoriesFn != nil {
		return f.ListCategoriesFn(ctx, db)
	}
	return nil, nil
}

func (f *FakeRepository) GetEntry(ctx context.Context, db bun.IDB, categoryID string) (*ScoreEntry, error) {
	if f.GetEntryFn != nil {
		return f.GetEntryFn(ctx, db, categoryID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetAllEntries(ctx context.Context, db bun.IDB) ([]ScoreEntry, error) {
	if f.GetAllEntriesFn != nil {
		return f.GetAllEntriesFn(ctx, db)
	}
	return nil, nil
}

func (f *FakeRepository) UpsertPlayerScore(ctx context.Context, db bun.IDB, categoryID string, player scoreboarddomain.Player, score scoreboarddomain.Score) (*ScoreChange, error) {
	if f.UpsertPlayerScoreFn != nil {
		return f.UpsertPlayerScoreFn(ctx, db, categoryID, player, score)
	}
	return &ScoreChange{}, nil
}

func (f *FakeRepository) AppendHistory(ctx context.Context, db bun.IDB, record *HistoryRecord) error {
	if f.AppendHistoryFn != nil {
		return f.AppendHistoryFn(ctx, db, record)
	}
	return nil
}

func (f *FakeRepository) QueryHistory(ctx context.Context, db bun.IDB, filter HistoryFilter) ([]HistoryRecord, error) {
	if f.QueryHistoryFn != nil {
		return f.QueryHistoryFn(ctx, db, filter)
	}
	return []HistoryRecord{}, nil
}

func (f *FakeRepository) Ping(ctx context.Context) error {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	return nil
}
