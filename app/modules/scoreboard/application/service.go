package scoreboardservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
	scoreboardmetrics "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/metrics"
	scoreboardnotifier "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/notifier"
	scoreboarddb "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/repositories"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ScoreboardService implements the Service interface.
type ScoreboardService struct {
	repo     scoreboarddb.Repository
	db       *bun.DB
	registry *scoreboarddomain.Registry
	notifier scoreboardnotifier.Notifier
	logger   *slog.Logger
	metrics  scoreboardmetrics.ScoreboardMetrics
	tracer   trace.Tracer
	now      func() time.Time
}

var _ Service = (*ScoreboardService)(nil)

// NewScoreboardService creates a new ScoreboardService.
// A nil notifier disables change notifications.
func NewScoreboardService(
	repo scoreboarddb.Repository,
	db *bun.DB,
	registry *scoreboarddomain.Registry,
	notifier scoreboardnotifier.Notifier,
	logger *slog.Logger,
	metrics scoreboardmetrics.ScoreboardMetrics,
	tracer trace.Tracer,
) *ScoreboardService {
	if notifier == nil {
		notifier = scoreboardnotifier.Noop{}
	}
	return &ScoreboardService{
		repo:     repo,
		db:       db,
		registry: registry,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		now:      time.Now,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	s *ScoreboardService,
	ctx context.Context,
	operationName string,
	categoryID string,
	op operationFunc[T],
) (result T, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("category_id", categoryID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				"operation", operationName,
				"category_id", categoryID,
				"error", err,
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		span.RecordError(wrappedErr)

		// Rejected input is a normal outcome, not an operation failure.
		if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Operation rejected",
				"operation", operationName,
				"category_id", categoryID,
				"error", wrappedErr,
			)
			return result, wrappedErr
		}

		s.logger.ErrorContext(ctx, "Operation failed with error",
			"operation", operationName,
			"category_id", categoryID,
			"error", wrappedErr,
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		return result, wrappedErr
	}

	s.logger.DebugContext(ctx, operationName+" completed successfully",
		"operation", operationName,
		"category_id", categoryID,
	)
	s.metrics.RecordOperationSuccess(ctx, operationName)
	return result, nil
}

// runInTx runs fn inside a transaction. Without a database (unit tests) fn gets a nil IDB.
func runInTx[T any](
	s *ScoreboardService,
	ctx context.Context,
	opts *sql.TxOptions,
	fn func(ctx context.Context, db bun.IDB) (T, error),
) (T, error) {
	if s.db == nil {
		return fn(ctx, nil)
	}
	if opts == nil {
		opts = &sql.TxOptions{}
	}

	var result T
	err := s.db.RunInTx(ctx, opts, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func storageError(err error) error {
	if errors.Is(err, ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
