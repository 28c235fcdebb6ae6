package scoreboarddb

import (
	"time"

	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
	"github.com/uptrace/bun"
)

// Category mirrors one row of the static category table.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID        string `bun:"id,pk"`
	Label     string `bun:"label,notnull"`
	GroupName string `bun:"group_name,notnull"`
	SortOrder int    `bun:"sort_order,notnull"`
}

// ScoreEntry holds the current score pair for one category.
type ScoreEntry struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	CategoryID string    `bun:"category_id,pk"`
	JaredScore int32     `bun:"jared_score,notnull"`
	SteveScore int32     `bun:"steve_score,notnull"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// ScoreFor returns the stored value for a player.
func (e *ScoreEntry) ScoreFor(p scoreboarddomain.Player) int32 {
	if p == scoreboarddomain.PlayerSteve {
		return e.SteveScore
	}
	return e.JaredScore
}

// HistoryRecord is one immutable ledger row.
type HistoryRecord struct {
	bun.BaseModel `bun:"table:history,alias:h"`

	ID            int64                   `bun:"id,pk,autoincrement"`
	Timestamp     time.Time               `bun:"timestamp,nullzero,notnull,default:current_timestamp"`
	CategoryID    string                  `bun:"category_id,notnull"`
	Player        scoreboarddomain.Player `bun:"player,notnull"`
	Score         int32                   `bun:"score,notnull"`
	PreviousScore int32                   `bun:"previous_score,notnull"`
	SourceIP      string                  `bun:"source_ip,nullzero"`
}

// ScoreChange is what UpsertPlayerScore reports back to the transaction.
type ScoreChange struct {
	PreviousScore int32
	UpdatedAt     time.Time
}

// HistoryFilter narrows a ledger query. Empty fields match everything.
type HistoryFilter struct {
	Limit      int
	CategoryID string
	Player     scoreboarddomain.Player
}
