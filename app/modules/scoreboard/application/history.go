package scoreboardservice

import (
	"context"

	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
	scoreboarddb "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/repositories"
)

// History returns ledger records newest first. The limit is clamped to
// [0, MaxHistoryLimit]; a zero limit yields an empty list.
func (s *ScoreboardService) History(ctx context.Context, query HistoryQuery) ([]HistoryEntry, error) {
	return withTelemetry(s, ctx, "History", query.CategoryID, func(ctx context.Context) ([]HistoryEntry, error) {
		filter := scoreboarddb.HistoryFilter{Limit: clampHistoryLimit(query.Limit)}

		if query.CategoryID != "" {
			category, err := s.registry.Lookup(query.CategoryID)
			if err != nil {
				return nil, validationError(err)
			}
			filter.CategoryID = category.ID
		}
		if query.Player != "" {
			player, err := scoreboarddomain.ParsePlayer(query.Player)
			if err != nil {
				return nil, validationError(err)
			}
			filter.Player = player
		}

		records, err := s.repo.QueryHistory(ctx, nil, filter)
		if err != nil {
			return nil, storageError(err)
		}

		out := make([]HistoryEntry, 0, len(records))
		for _, r := range records {
			out = append(out, HistoryEntry{
				ID:            r.ID,
				Timestamp:     r.Timestamp,
				CategoryID:    r.CategoryID,
				Player:        r.Player,
				Score:         r.Score,
				PreviousScore: r.PreviousScore,
				SourceIP:      r.SourceIP,
			})
		}
		return out, nil
	})
}
