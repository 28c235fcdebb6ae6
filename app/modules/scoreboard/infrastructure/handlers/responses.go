package scoreboardhandlers

import (
	"encoding/json"
	"net/http"
	"time"

	scoreboardservice "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/application"
)

// timeLayout renders UTC timestamps with millisecond precision.
const timeLayout = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type updateScoreResponse struct {
	OK         bool   `json:"ok"`
	UpdatedAt  string `json:"updatedAt"`
	CategoryID string `json:"categoryId"`
	Player     string `json:"player"`
	Score      int32  `json:"score"`
}

type metaResponse struct {
	UpdatedAt string `json:"updatedAt"`
}

type categoryResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group string `json:"group"`
	Order int    `json:"order"`
}

type scoreResponse struct {
	CategoryID string `json:"categoryId,omitempty"`
	Jared      int32  `json:"jared"`
	Steve      int32  `json:"steve"`
	UpdatedAt  string `json:"updatedAt"`
}

type scoresResponse struct {
	Meta       metaResponse             `json:"meta"`
	Categories []categoryResponse       `json:"categories"`
	Scores     map[string]scoreResponse `json:"scores"`
}

type historyEntryResponse struct {
	Timestamp     string  `json:"timestamp"`
	CategoryID    string  `json:"categoryId"`
	Player        string  `json:"player"`
	Score         int32   `json:"score"`
	PreviousScore int32   `json:"previousScore"`
	SourceIP      *string `json:"sourceIp"`
}

type historyResponse struct {
	History []historyEntryResponse `json:"history"`
}

type healthResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func newScoresResponse(snap *scoreboardservice.Snapshot) scoresResponse {
	resp := scoresResponse{
		Meta:       metaResponse{UpdatedAt: formatTime(snap.UpdatedAt)},
		Categories: make([]categoryResponse, 0, len(snap.Categories)),
		Scores:     make(map[string]scoreResponse, len(snap.Scores)),
	}
	for _, c := range snap.Categories {
		resp.Categories = append(resp.Categories, categoryResponse{
			ID:    c.ID,
			Label: c.Label,
			Group: c.Group,
			Order: c.Order,
		})
	}
	for id, v := range snap.Scores {
		resp.Scores[id] = scoreResponse{
			Jared:     v.Jared,
			Steve:     v.Steve,
			UpdatedAt: formatTime(v.UpdatedAt),
		}
	}
	return resp
}

func newHistoryResponse(entries []scoreboardservice.HistoryEntry) historyResponse {
	resp := historyResponse{History: make([]historyEntryResponse, 0, len(entries))}
	for _, e := range entries {
		item := historyEntryResponse{
			Timestamp:     formatTime(e.Timestamp),
			CategoryID:    e.CategoryID,
			Player:        e.Player.String(),
			Score:         e.Score,
			PreviousScore: e.PreviousScore,
		}
		if e.SourceIP != "" {
			ip := e.SourceIP
			item.SourceIP = &ip
		}
		resp.History = append(resp.History, item)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{OK: false, Error: msg})
}
