package scoreboardnotifier

import (
	"context"
	"time"
)

// ScoreUpdatedEvent is published after a score change commits.
type ScoreUpdatedEvent struct {
	EventID       string    `json:"eventId"`
	CategoryID    string    `json:"categoryId"`
	Player        string    `json:"player"`
	Score         int32     `json:"score"`
	PreviousScore int32     `json:"previousScore"`
	UpdatedAt     time.Time `json:"updatedAt"`
	SourceIP      string    `json:"sourceIp,omitempty"`
}

// Notifier fans committed score changes out to other services.
type Notifier interface {
	PublishScoreUpdated(ctx context.Context, event ScoreUpdatedEvent) error
	Close() error
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) PublishScoreUpdated(context.Context, ScoreUpdatedEvent) error { return nil }
func (Noop) Close() error                                                { return nil }
