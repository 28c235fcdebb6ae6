package scoreboardintegrationtests

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	scoreboardservice "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/application"
	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
	scoreboardmetrics "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/metrics"
	scoreboardnotifier "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/notifier"
	scoreboarddb "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/repositories"
	"github.com/Black-And-White-Club/scoreboard/integration_tests/testutils"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvErr  error
	testEnvOnce sync.Once
)

// GetTestEnv starts the shared containers on first use.
func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()
	testutils.SkipIfUnavailable(t)

	testEnvOnce.Do(func() {
		testEnv, testEnvErr = testutils.NewTestEnvironment()
	})
	if testEnvErr != nil {
		t.Fatalf("Failed to set up test environment: %v", testEnvErr)
	}
	return testEnv
}

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx      context.Context
	Repo     scoreboarddb.Repository
	BunDB    *bun.DB
	Registry *scoreboarddomain.Registry
	Service  scoreboardservice.Service
}

// SetupTestScoreboardService resets the database, seeds the default
// categories and returns a service wired to real Postgres.
func SetupTestScoreboardService(t *testing.T, notifier scoreboardnotifier.Notifier) TestDeps {
	t.Helper()
	env := GetTestEnv(t)

	if err := env.Reset(env.Ctx); err != nil {
		t.Fatalf("Failed to reset database: %v", err)
	}

	registry, err := scoreboarddomain.NewRegistry(scoreboarddomain.DefaultCategories())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	repo := scoreboarddb.NewRepository(env.DB)
	service := scoreboardservice.NewScoreboardService(
		repo,
		env.DB,
		registry,
		notifier,
		slog.New(slog.NewTextHandler(testWriter{t}, nil)),
		scoreboardmetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
	)
	if err := service.SeedCategories(env.Ctx); err != nil {
		t.Fatalf("SeedCategories() error = %v", err)
	}

	return TestDeps{
		Ctx:      env.Ctx,
		Repo:     repo,
		BunDB:    env.DB,
		Registry: registry,
		Service:  service,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testWriter routes service logs through t.Log so they show up only on failure.
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// recordingNotifier counts published events.
type recordingNotifier struct {
	count int
}

func (n *recordingNotifier) PublishScoreUpdated(context.Context, scoreboardnotifier.ScoreUpdatedEvent) error {
	n.count++
	return nil
}

func (n *recordingNotifier) Close() error { return nil }
