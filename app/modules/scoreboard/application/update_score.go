package scoreboardservice

import (
	"context"

	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
	scoreboardmetrics "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/metrics"
	scoreboardnotifier "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/notifier"
	scoreboarddb "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/repositories"
	"github.com/uptrace/bun"
)

type validUpdate struct {
	player   scoreboarddomain.Player
	category scoreboarddomain.Category
	score    scoreboarddomain.Score
}

// UpdateScore validates an edit, then writes the new score and its ledger
// record in one transaction. Concurrent edits of the same category serialise
// on the entry's row lock, so each record's previous score is the value the
// preceding commit wrote.
func (s *ScoreboardService) UpdateScore(ctx context.Context, req UpdateScoreRequest) (*UpdateScoreResult, error) {
	return withTelemetry(s, ctx, "UpdateScore", req.CategoryID, func(ctx context.Context) (*UpdateScoreResult, error) {
		in, err := s.validateUpdate(req)
		if err != nil {
			s.metrics.RecordScoreUpdate(ctx, scoreboardmetrics.ResultRejected)
			return nil, err
		}

		result, err := runInTx(s, ctx, nil, func(ctx context.Context, db bun.IDB) (*UpdateScoreResult, error) {
			change, err := s.repo.UpsertPlayerScore(ctx, db, in.category.ID, in.player, in.score)
			if err != nil {
				return nil, err
			}

			record := &scoreboarddb.HistoryRecord{
				Timestamp:     change.UpdatedAt,
				CategoryID:    in.category.ID,
				Player:        in.player,
				Score:         int32(in.score),
				PreviousScore: change.PreviousScore,
				SourceIP:      req.Origin,
			}
			if err := s.repo.AppendHistory(ctx, db, record); err != nil {
				return nil, err
			}

			return &UpdateScoreResult{
				CategoryID:    in.category.ID,
				Player:        in.player,
				Score:         int32(in.score),
				PreviousScore: change.PreviousScore,
				UpdatedAt:     change.UpdatedAt,
			}, nil
		})
		if err != nil {
			s.metrics.RecordScoreUpdate(ctx, scoreboardmetrics.ResultFailed)
			return nil, storageError(err)
		}

		s.metrics.RecordScoreUpdate(ctx, scoreboardmetrics.ResultCommitted)
		s.logger.InfoContext(ctx, "Score updated",
			"category_id", result.CategoryID,
			"player", result.Player,
			"score", result.Score,
			"previous_score", result.PreviousScore,
			"source_ip", req.Origin,
		)

		s.notify(ctx, result, req.Origin)
		return result, nil
	})
}

func (s *ScoreboardService) validateUpdate(req UpdateScoreRequest) (validUpdate, error) {
	player, err := scoreboarddomain.ParsePlayer(req.Player)
	if err != nil {
		return validUpdate{}, validationError(err)
	}
	category, err := s.registry.Lookup(req.CategoryID)
	if err != nil {
		return validUpdate{}, validationError(err)
	}
	score, err := scoreboarddomain.ParseScore(req.Score)
	if err != nil {
		return validUpdate{}, validationError(err)
	}
	return validUpdate{player: player, category: category, score: score}, nil
}

// notify publishes the committed change. Failures are logged and counted only;
// the edit is already durable, so a cancelled request does not suppress it.
func (s *ScoreboardService) notify(ctx context.Context, result *UpdateScoreResult, origin string) {
	ctx = context.WithoutCancel(ctx)

	err := s.notifier.PublishScoreUpdated(ctx, scoreboardnotifier.ScoreUpdatedEvent{
		CategoryID:    result.CategoryID,
		Player:        result.Player.String(),
		Score:         result.Score,
		PreviousScore: result.PreviousScore,
		UpdatedAt:     result.UpdatedAt,
		SourceIP:      origin,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to publish score update",
			"category_id", result.CategoryID,
			"error", err,
		)
		s.metrics.RecordNotification(ctx, scoreboardmetrics.ResultFailed)
		return
	}
	s.metrics.RecordNotification(ctx, scoreboardmetrics.ResultCommitted)
}
