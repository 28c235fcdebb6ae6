package scoreboardservice

import (
	"context"
)

// Service defines the scoreboard operations exposed to transports.
type Service interface {
	UpdateScore(ctx context.Context, req UpdateScoreRequest) (*UpdateScoreResult, error)
	Snapshot(ctx context.Context) (*Snapshot, error)
	GetScore(ctx context.Context, categoryID string) (*ScoreView, error)
	History(ctx context.Context, query HistoryQuery) ([]HistoryEntry, error)
	SeedCategories(ctx context.Context) error
	Health(ctx context.Context) error
}
