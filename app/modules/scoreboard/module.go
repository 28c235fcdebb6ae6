package scoreboard

import (
	"context"
	"fmt"
	"log/slog"

	scoreboardservice "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/application"
	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
	scoreboardhandlers "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/handlers"
	scoreboardmetrics "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/metrics"
	scoreboardnotifier "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/notifier"
	scoreboarddb "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/repositories"
	scoreboardrouter "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/router"
	"github.com/Black-And-White-Club/scoreboard/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Dependencies are the shared resources the module is built from.
type Dependencies struct {
	DB       *bun.DB
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Metrics  scoreboardmetrics.ScoreboardMetrics
	Notifier scoreboardnotifier.Notifier
}

// Module represents the scoreboard module.
type Module struct {
	config   *config.Config
	service  scoreboardservice.Service
	handlers scoreboardhandlers.Handlers
	logger   *slog.Logger
}

// NewModule creates the scoreboard module and registers its routes on httpRouter.
func NewModule(ctx context.Context, cfg *config.Config, deps Dependencies, httpRouter chi.Router) (*Module, error) {
	logger := deps.Logger
	logger.InfoContext(ctx, "Initializing scoreboard module")

	registry, err := scoreboarddomain.NewRegistry(Categories(cfg))
	if err != nil {
		return nil, fmt.Errorf("invalid category table: %w", err)
	}

	repo := scoreboarddb.NewRepository(deps.DB)
	service := scoreboardservice.NewScoreboardService(
		repo,
		deps.DB,
		registry,
		deps.Notifier,
		logger,
		deps.Metrics,
		deps.Tracer,
	)
	handlers := scoreboardhandlers.NewScoreboardHandlers(service, logger, deps.Tracer)

	if httpRouter != nil {
		scoreboardrouter.RegisterRoutes(httpRouter, handlers, scoreboardrouter.Options{
			EditKey:        cfg.Edit.Key,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			WriteRPS:       cfg.HTTP.RateLimit.RPS,
			WriteBurst:     cfg.HTTP.RateLimit.Burst,
		})
	}

	if !cfg.EditKeyRequired() {
		logger.WarnContext(ctx, "No edit key configured; score writes are open")
	}

	return &Module{
		config:   cfg,
		service:  service,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Seed writes the category table into storage.
func (m *Module) Seed(ctx context.Context) error {
	return m.service.SeedCategories(ctx)
}

// GetService returns the scoreboard service.
func (m *Module) GetService() scoreboardservice.Service {
	return m.service
}

// Categories returns the configured category table, or the built-in one.
func Categories(cfg *config.Config) []scoreboarddomain.Category {
	if len(cfg.Categories) == 0 {
		return scoreboarddomain.DefaultCategories()
	}
	out := make([]scoreboarddomain.Category, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		out = append(out, scoreboarddomain.Category{
			ID:    c.ID,
			Label: c.Label,
			Group: c.Group,
			Order: c.Order,
		})
	}
	return out
}
