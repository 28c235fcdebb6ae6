package scoreboardservice

import (
	"context"

	"github.com/uptrace/bun"
)

// SeedCategories writes the registry into storage and creates a zero entry
// for each category that lacks one. Existing scores are kept.
func (s *ScoreboardService) SeedCategories(ctx context.Context) error {
	_, err := withTelemetry(s, ctx, "SeedCategories", "", func(ctx context.Context) (struct{}, error) {
		_, err := runInTx(s, ctx, nil, func(ctx context.Context, db bun.IDB) (struct{}, error) {
			return struct{}{}, s.repo.SeedCategories(ctx, db, s.registry.Categories())
		})
		if err != nil {
			return struct{}{}, storageError(err)
		}
		s.logger.InfoContext(ctx, "Categories seeded", "count", s.registry.Len())
		return struct{}{}, nil
	})
	return err
}

// Health reports whether the database answers.
func (s *ScoreboardService) Health(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		s.logger.WarnContext(ctx, "Health check failed", "error", err)
		return storageError(err)
	}
	return nil
}
