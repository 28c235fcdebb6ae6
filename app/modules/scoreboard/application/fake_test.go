package scoreboardservice

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
	scoreboardmetrics "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/metrics"
	scoreboardnotifier "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/notifier"
	scoreboarddb "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/repositories"
	"go.opentelemetry.io/otel/trace/noop"
)

// FakeNotifier records published events.
type FakeNotifier struct {
	mu     sync.Mutex
	events []scoreboardnotifier.ScoreUpdatedEvent

	PublishScoreUpdatedFn func(ctx context.Context, event scoreboardnotifier.ScoreUpdatedEvent) error
}

func (f *FakeNotifier) PublishScoreUpdated(ctx context.Context, event scoreboardnotifier.ScoreUpdatedEvent) error {
	f.mu.Lock()
	f.events = append(f.events, event)
	f.mu.Unlock()
	if f.PublishScoreUpdatedFn != nil {
		return f.PublishScoreUpdatedFn(ctx, event)
	}
	return nil
}

func (f *FakeNotifier) Close() error { return nil }

func (f *FakeNotifier) Events() []scoreboardnotifier.ScoreUpdatedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]scoreboardnotifier.ScoreUpdatedEvent, len(f.events))
	copy(out, f.events)
	return out
}

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, repo scoreboarddb.Repository, notifier scoreboardnotifier.Notifier) *ScoreboardService {
	t.Helper()
	registry, err := scoreboarddomain.NewRegistry(scoreboarddomain.DefaultCategories())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	s := NewScoreboardService(
		repo,
		nil,
		registry,
		notifier,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		scoreboardmetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
	)
	s.now = func() time.Time { return testNow }
	return s
}
