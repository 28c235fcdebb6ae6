package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard"
	scoreboardhandlers "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/handlers"
	scoreboardmetrics "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/metrics"
	scoreboardnotifier "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/notifier"
	"github.com/Black-And-White-Club/scoreboard/config"
	"github.com/Black-And-White-Club/scoreboard/db/bundb"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

const tracerName = "github.com/Black-And-White-Club/scoreboard"

// App holds the process-wide resources and the scoreboard module.
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	DB         *bun.DB
	Router     *chi.Mux
	Registry   *prometheus.Registry
	Notifier   scoreboardnotifier.Notifier
	Scoreboard *scoreboard.Module
}

// NewLogger builds the process logger: text in development, JSON otherwise.
func NewLogger(obs config.ObservabilityConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(obs.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(obs.Environment, "development") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", "scoreboard")
}

// NewApp opens storage, applies migrations, seeds the category table and
// wires the HTTP surface.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := NewLogger(cfg.Observability)

	db, err := bundb.Open(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Registry: prometheus.NewRegistry(),
	}

	if err := a.init(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.Config

	if cfg.Postgres.ShouldAutoMigrate() {
		if err := bundb.Migrate(ctx, a.DB, a.Logger); err != nil {
			return err
		}
	}

	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := scoreboardmetrics.NewPrometheus(a.Registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	a.Notifier = scoreboardnotifier.Noop{}
	if cfg.NATS.URL != "" {
		n, err := scoreboardnotifier.NewNATSNotifier(cfg.NATS.URL, cfg.NATS.Subject, a.Logger)
		if err != nil {
			return err
		}
		a.Notifier = n
		a.Logger.InfoContext(ctx, "Publishing score updates", "subject", cfg.NATS.Subject)
	}

	a.Router = newRouter(cfg.HTTP, a.Logger)
	a.Scoreboard, err = scoreboard.NewModule(ctx, cfg, scoreboard.Dependencies{
		DB:       a.DB,
		Logger:   a.Logger,
		Tracer:   otel.Tracer(tracerName),
		Metrics:  metrics,
		Notifier: a.Notifier,
	}, a.Router)
	if err != nil {
		return fmt.Errorf("failed to initialize scoreboard module: %w", err)
	}

	if err := a.Scoreboard.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}

func newRouter(cfg config.HTTPConfig, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(scoreboardhandlers.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	return r
}

// Close releases the notifier and the database pool.
func (a *App) Close() error {
	var errs []error
	if a.Notifier != nil {
		if err := a.Notifier.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
