package scoreboardhandlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	scoreboardservice "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/application"
	"github.com/go-chi/chi/v5"
)

// HandleGetScores returns every category with its current scores.
func (h *ScoreboardHandlers) HandleGetScores(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap, err := h.service.Snapshot(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to load scores", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, newScoresResponse(snap))
}

// HandleGetScore returns the scores of one category.
func (h *ScoreboardHandlers) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categoryID := chi.URLParam(r, "categoryID")

	view, err := h.service.GetScore(ctx, categoryID)
	if err != nil {
		if errors.Is(err, scoreboardservice.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load score", "category_id", categoryID, "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, scoreResponse{
		CategoryID: view.CategoryID,
		Jared:      view.Jared,
		Steve:      view.Steve,
		UpdatedAt:  formatTime(view.UpdatedAt),
	})
}

// HandleGetHistory returns the newest ledger records.
func (h *ScoreboardHandlers) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := historyQuery(r, scoreboardservice.DefaultHistoryLimit)

	entries, err := h.service.History(ctx, query)
	if err != nil {
		if errors.Is(err, scoreboardservice.ErrValidation) {
			writeError(w, http.StatusBadRequest, "Invalid history filter")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load history", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, newHistoryResponse(entries))
}

// HandleHealth reports database reachability.
func (h *ScoreboardHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Health(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, healthResponse{OK: false, Error: "db_unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{OK: true})
}

// historyQuery reads limit, categoryId and player from the query string.
func historyQuery(r *http.Request, def int) scoreboardservice.HistoryQuery {
	q := r.URL.Query()
	return scoreboardservice.HistoryQuery{
		Limit:      parseLimit(q.Get("limit"), def),
		CategoryID: q.Get("categoryId"),
		Player:     q.Get("player"),
	}
}

// parseLimit reads the leading decimal integer of raw ("5abc" and "5.9" give 5).
// Input without leading digits gives def; anything else is clamped to
// [0, MaxHistoryLimit].
func parseLimit(raw string, def int) int {
	raw = strings.TrimLeft(raw, " \t\n\r")
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return def
	}

	n, err := strconv.ParseInt(raw[:end], 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		if raw[0] == '-' {
			return 0
		}
		return scoreboardservice.MaxHistoryLimit
	}
	if err != nil {
		return def
	}
	if n > scoreboardservice.MaxHistoryLimit {
		return scoreboardservice.MaxHistoryLimit
	}
	if n < 0 {
		return 0
	}
	return int(n)
}
