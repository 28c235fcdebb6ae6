package scoreboardservice

import (
	"context"
	"database/sql"
	"errors"

	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
	scoreboarddb "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// Snapshot returns every registered category with its current scores.
// Entries are read in a single read-only REPEATABLE READ transaction, so the
// view never mixes two commits; no row locks are taken.
func (s *ScoreboardService) Snapshot(ctx context.Context) (*Snapshot, error) {
	return withTelemetry(s, ctx, "Snapshot", "", func(ctx context.Context) (*Snapshot, error) {
		opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
		entries, err := runInTx(s, ctx, opts, func(ctx context.Context, db bun.IDB) ([]scoreboarddb.ScoreEntry, error) {
			return s.repo.GetAllEntries(ctx, db)
		})
		if err != nil {
			return nil, storageError(err)
		}

		snap := &Snapshot{
			Categories: s.registry.Categories(),
			Scores:     make(map[string]ScoreView, len(entries)),
		}
		for _, e := range entries {
			if _, err := s.registry.Lookup(e.CategoryID); err != nil {
				continue
			}
			snap.Scores[e.CategoryID] = toScoreView(e)
			if e.UpdatedAt.After(snap.UpdatedAt) {
				snap.UpdatedAt = e.UpdatedAt
			}
		}
		if snap.UpdatedAt.IsZero() {
			snap.UpdatedAt = s.now()
		}
		return snap, nil
	})
}

// GetScore returns the entry of one category.
func (s *ScoreboardService) GetScore(ctx context.Context, categoryID string) (*ScoreView, error) {
	return withTelemetry(s, ctx, "GetScore", categoryID, func(ctx context.Context) (*ScoreView, error) {
		category, err := s.registry.Lookup(categoryID)
		if err != nil {
			return nil, errors.Join(ErrNotFound, err)
		}

		entry, err := s.repo.GetEntry(ctx, nil, category.ID)
		if err != nil {
			if errors.Is(err, scoreboarddb.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, storageError(err)
		}
		view := toScoreView(*entry)
		return &view, nil
	})
}

func toScoreView(e scoreboarddb.ScoreEntry) ScoreView {
	return ScoreView{
		CategoryID: e.CategoryID,
		Jared:      e.ScoreFor(scoreboarddomain.PlayerJared),
		Steve:      e.ScoreFor(scoreboarddomain.PlayerSteve),
		UpdatedAt:  e.UpdatedAt,
	}
}
