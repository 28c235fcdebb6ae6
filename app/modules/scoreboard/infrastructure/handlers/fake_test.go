package scoreboardhandlers

import (
	"context"

	scoreboardservice "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/application"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	UpdateScoreFunc    func(ctx context.Context, req scoreboardservice.UpdateScoreRequest) (*scoreboardservice.UpdateScoreResult, error)
	SnapshotFunc       func(ctx context.Context) (*scoreboardservice.Snapshot, error)
	GetScoreFunc       func(ctx context.Context, categoryID string) (*scoreboardservice.ScoreView, error)
	HistoryFunc        func(ctx context.Context, query scoreboardservice.HistoryQuery) ([]scoreboardservice.HistoryEntry, error)
	SeedCategoriesFunc func(ctx context.Context) error
	HealthFunc         func(ctx context.Context) error

	UpdateCalls []scoreboardservice.UpdateScoreRequest
}

var _ scoreboardservice.Service = (*FakeService)(nil)

func (f *FakeService) UpdateScore(ctx context.Context, req scoreboardservice.UpdateScoreRequest) (*scoreboardservice.UpdateScoreResult, error) {
	f.UpdateCalls = append(f.UpdateCalls, req)
	if f.UpdateScoreFunc != nil {
		return f.UpdateScoreFunc(ctx, req)
	}
	return &scoreboardservice.UpdateScoreResult{}, nil
}

func (f *FakeService) Snapshot(ctx context.Context) (*scoreboardservice.Snapshot, error) {
	if f.SnapshotFunc != nil {
		return f.SnapshotFunc(ctx)
	}
	return &scoreboardservice.Snapshot{Scores: map[string]scoreboardservice.ScoreView{}}, nil
}

func (f *FakeService) GetScore(ctx context.Context, categoryID string) (*scoreboardservice.ScoreView, error) {
	if f.GetScoreFunc != nil {
		return f.GetScoreFunc(ctx, categoryID)
	}
	return nil, scoreboardservice.ErrNotFound
}

func (f *FakeService) History(ctx context.Context, query scoreboardservice.HistoryQuery) ([]scoreboardservice.HistoryEntry, error) {
	if f.HistoryFunc != nil {
		return f.HistoryFunc(ctx, query)
	}
	return nil, nil
}

func (f *FakeService) SeedCategories(ctx context.Context) error {
	if f.SeedCategoriesFunc != nil {
		return f.SeedCategoriesFunc(ctx)
	}
	return nil
}

func (f *FakeService) Health(ctx context.Context) error {
	if f.HealthFunc != nil {
		return f.HealthFunc(ctx)
	}
	return nil
}
