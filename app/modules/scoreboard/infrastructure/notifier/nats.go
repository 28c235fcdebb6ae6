package scoreboardnotifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
)

// CategoryIDKey is the metadata key (and NATS header) carrying the category.
const CategoryIDKey = "category_id"

// NATSNotifier publishes ScoreUpdatedEvent as JSON through a watermill
// publisher on a core NATS subject.
type NATSNotifier struct {
	publisher message.Publisher
	subject   string
	logger    *slog.Logger
}

// NewNATSNotifier connects to url and publishes on subject.
func NewNATSNotifier(url, subject string, logger *slog.Logger) (*NATSNotifier, error) {
	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL: url,
			NatsOptions: []nc.Option{
				nc.Name("scoreboard"),
				nc.Timeout(5 * time.Second),
				nc.MaxReconnects(-1),
				nc.DisconnectErrHandler(func(_ *nc.Conn, err error) {
					if err != nil {
						logger.Warn("NATS disconnected", "error", err)
					}
				}),
				nc.ReconnectHandler(func(c *nc.Conn) {
					logger.Info("NATS reconnected", "url", c.ConnectedUrl())
				}),
			},
			Marshaler:         &wmnats.NATSMarshaler{},
			JetStream:         wmnats.JetStreamConfig{Disabled: true},
			SubjectCalculator: wmnats.DefaultSubjectCalculator,
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}
	return NewNATSNotifierWithPublisher(publisher, subject, logger), nil
}

// NewNATSNotifierWithPublisher builds a notifier over an existing publisher.
func NewNATSNotifierWithPublisher(publisher message.Publisher, subject string, logger *slog.Logger) *NATSNotifier {
	return &NATSNotifier{publisher: publisher, subject: subject, logger: logger}
}

func (n *NATSNotifier) PublishScoreUpdated(ctx context.Context, event ScoreUpdatedEvent) error {
	if n.publisher == nil {
		return errors.New("notifier: no publisher")
	}
	if event.EventID == "" {
		event.EventID = watermill.NewUUID()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notifier: marshal event: %w", err)
	}

	msg := message.NewMessage(event.EventID, payload)
	msg.Metadata.Set(CategoryIDKey, event.CategoryID)
	msg.SetContext(ctx)

	if err := n.publisher.Publish(n.subject, msg); err != nil {
		return fmt.Errorf("notifier: publish to %s: %w", n.subject, err)
	}

	n.logger.DebugContext(ctx, "Published score update",
		"subject", n.subject,
		"event_id", event.EventID,
		"category_id", event.CategoryID,
	)
	return nil
}

// Close shuts the publisher down, flushing pending messages.
func (n *NATSNotifier) Close() error {
	if n.publisher == nil {
		return nil
	}
	if err := n.publisher.Close(); err != nil {
		return fmt.Errorf("notifier: close publisher: %w", err)
	}
	return nil
}
