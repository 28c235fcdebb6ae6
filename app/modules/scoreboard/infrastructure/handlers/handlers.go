package scoreboardhandlers

import (
	"log/slog"
	"net/http"

	scoreboardservice "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/application"
	"go.opentelemetry.io/otel/trace"
)

// Handlers is the HTTP surface of the scoreboard.
type Handlers interface {
	HandleUpdateScore(w http.ResponseWriter, r *http.Request)
	HandleGetScores(w http.ResponseWriter, r *http.Request)
	HandleGetScore(w http.ResponseWriter, r *http.Request)
	HandleGetHistory(w http.ResponseWriter, r *http.Request)
	HandleExportHistory(w http.ResponseWriter, r *http.Request)
	HandleHealth(w http.ResponseWriter, r *http.Request)
}

// ScoreboardHandlers implements Handlers over the scoreboard service.
type ScoreboardHandlers struct {
	service scoreboardservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewScoreboardHandlers creates a new ScoreboardHandlers instance.
func NewScoreboardHandlers(
	service scoreboardservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &ScoreboardHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}
