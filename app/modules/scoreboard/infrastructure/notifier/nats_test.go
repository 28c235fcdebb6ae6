package scoreboardnotifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// FakePublisher records messages handed to a watermill publisher.
type FakePublisher struct {
	PublishFn func(topic string, messages ...*message.Message) error
	CloseFn   func() error

	topics    []string
	published []*message.Message
	closed    bool
}

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	f.topics = append(f.topics, topic)
	f.published = append(f.published, messages...)
	if f.PublishFn != nil {
		return f.PublishFn(topic, messages...)
	}
	return nil
}

func (f *FakePublisher) Close() error {
	f.closed = true
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}

func TestNATSNotifier_PublishScoreUpdated(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	updatedAt := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("publishes json with message uuid", func(t *testing.T) {
		pub := &FakePublisher{}
		n := NewNATSNotifierWithPublisher(pub, "scoreboard.score.updated", logger)

		err := n.PublishScoreUpdated(context.Background(), ScoreUpdatedEvent{
			CategoryID:    "classic",
			Player:        "jared",
			Score:         5,
			PreviousScore: 0,
			UpdatedAt:     updatedAt,
			SourceIP:      "10.0.0.1",
		})
		require.NoError(t, err)
		require.Len(t, pub.published, 1)
		assert.Equal(t, []string{"scoreboard.score.updated"}, pub.topics)

		msg := pub.published[0]
		assert.NotEmpty(t, msg.UUID)
		assert.Equal(t, "classic", msg.Metadata.Get(CategoryIDKey))

		var got ScoreUpdatedEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, msg.UUID, got.EventID)
		assert.Equal(t, int32(5), got.Score)
		assert.Equal(t, "10.0.0.1", got.SourceIP)
		assert.True(t, updatedAt.Equal(got.UpdatedAt))
	})

	t.Run("keeps caller event id", func(t *testing.T) {
		pub := &FakePublisher{}
		n := NewNATSNotifierWithPublisher(pub, "s", logger)
		require.NoError(t, n.PublishScoreUpdated(context.Background(), ScoreUpdatedEvent{EventID: "evt-1"}))
		assert.Equal(t, "evt-1", pub.published[0].UUID)
	})

	t.Run("message carries the caller context", func(t *testing.T) {
		type key struct{}
		pub := &FakePublisher{}
		n := NewNATSNotifierWithPublisher(pub, "s", logger)
		ctx := context.WithValue(context.Background(), key{}, "v")
		require.NoError(t, n.PublishScoreUpdated(ctx, ScoreUpdatedEvent{}))
		assert.Equal(t, "v", pub.published[0].Context().Value(key{}))
	})

	t.Run("publish error is wrapped", func(t *testing.T) {
		boom := errors.New("connection closed")
		pub := &FakePublisher{PublishFn: func(string, ...*message.Message) error { return boom }}
		n := NewNATSNotifierWithPublisher(pub, "s", logger)
		err := n.PublishScoreUpdated(context.Background(), ScoreUpdatedEvent{})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("close closes the publisher", func(t *testing.T) {
		pub := &FakePublisher{}
		n := NewNATSNotifierWithPublisher(pub, "s", logger)
		require.NoError(t, n.Close())
		assert.True(t, pub.closed)
	})

	t.Run("nil publisher", func(t *testing.T) {
		n := NewNATSNotifierWithPublisher(nil, "s", logger)
		assert.Error(t, n.PublishScoreUpdated(context.Background(), ScoreUpdatedEvent{}))
		assert.NoError(t, n.Close())
	})
}
