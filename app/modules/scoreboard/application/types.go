package scoreboardservice

import (
	"time"

	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
)

const (
	// DefaultHistoryLimit is used when a caller gives no usable limit.
	DefaultHistoryLimit = 100
	// MaxHistoryLimit caps every ledger read.
	MaxHistoryLimit = 1000
)

// UpdateScoreRequest is an unvalidated score edit.
// Score holds the textual form of the submitted value ("5", "5.0", "1e3").
type UpdateScoreRequest struct {
	Player     string
	CategoryID string
	Score      string
	Origin     string
}

// UpdateScoreResult describes a committed edit.
type UpdateScoreResult struct {
	CategoryID    string
	Player        scoreboarddomain.Player
	Score         int32
	PreviousScore int32
	UpdatedAt     time.Time
}

// ScoreView is the current pair of scores for one category.
type ScoreView struct {
	CategoryID string
	Jared      int32
	Steve      int32
	UpdatedAt  time.Time
}

// Snapshot is a consistent view of every category and its scores.
type Snapshot struct {
	UpdatedAt  time.Time
	Categories []scoreboarddomain.Category
	Scores     map[string]ScoreView
}

// HistoryQuery selects ledger records. Empty filters match everything.
type HistoryQuery struct {
	Limit      int
	CategoryID string
	Player     string
}

// HistoryEntry is one ledger record as returned to callers.
type HistoryEntry struct {
	ID            int64
	Timestamp     time.Time
	CategoryID    string
	Player        scoreboarddomain.Player
	Score         int32
	PreviousScore int32
	SourceIP      string
}

func clampHistoryLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}
