package scoreboardhandlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	scoreboardservice "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/application"
	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
	"go.opentelemetry.io/otel/attribute"
)

// MaxBodyBytes bounds the JSON body of a score edit.
const MaxBodyBytes = 5 * 1024

type updateScoreRequest struct {
	Player     json.RawMessage `json:"player"`
	CategoryID json.RawMessage `json:"categoryId"`
	Score      json.RawMessage `json:"score"`
}

// HandleUpdateScore applies one score edit. The edit key has already been
// checked by RequireEditKey.
func (h *ScoreboardHandlers) HandleUpdateScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HandleUpdateScore")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	var body updateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Payload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	req := scoreboardservice.UpdateScoreRequest{
		Player:     rawText(body.Player),
		CategoryID: rawText(body.CategoryID),
		Score:      rawText(body.Score),
		Origin:     clientIP(r),
	}
	span.SetAttributes(
		attribute.String("category_id", req.CategoryID),
		attribute.String("player", req.Player),
	)

	result, err := h.service.UpdateScore(ctx, req)
	if err != nil {
		status, msg := updateErrorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "Failed to update score",
				"category_id", req.CategoryID,
				"error", err,
			)
			span.RecordError(err)
		}
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, updateScoreResponse{
		OK:         true,
		UpdatedAt:  formatTime(result.UpdatedAt),
		CategoryID: result.CategoryID,
		Player:     result.Player.String(),
		Score:      result.Score,
	})
}

func updateErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, scoreboarddomain.ErrInvalidPlayer):
		return http.StatusBadRequest, "Invalid player"
	case errors.Is(err, scoreboarddomain.ErrUnknownCategory):
		return http.StatusBadRequest, "Invalid categoryId"
	case errors.Is(err, scoreboarddomain.ErrInvalidScore):
		return http.StatusBadRequest, "Invalid score"
	case errors.Is(err, scoreboardservice.ErrValidation):
		return http.StatusBadRequest, "Invalid request"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// rawText turns a JSON value into the text the service validates:
// strings are unquoted, null and absent values become "", and anything else
// (numbers, booleans, objects) is passed through literally.
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	return string(raw)
}
