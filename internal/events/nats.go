package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// Publisher is the subset of *nats.Conn used to forward events.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher is an EventHandler that publishes every event as JSON on
// "<prefix>.<event type>", e.g. "cohort-tools.student.deleted".
type NATSPublisher struct {
	conn   Publisher
	prefix string
	logger *slog.Logger
}

var _ EventHandler = (*NATSPublisher)(nil)

// ConnectNATS dials the NATS server at url.
func ConnectNATS(url string, logger *slog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("cohort-tools-api"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS connection lost", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS connection restored", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}

// NewNATSPublisher creates a NATSPublisher writing to conn under prefix.
func NewNATSPublisher(conn Publisher, prefix string, logger *slog.Logger) *NATSPublisher {
	logger.Info("NATS publisher initialized", "subject_prefix", prefix)
	return &NATSPublisher{
		conn:   conn,
		prefix: prefix,
		logger: logger.With("component", "nats_publisher"),
	}
}

// Subject returns the subject an event of eventType is published on.
func (p *NATSPublisher) Subject(eventType string) string {
	return p.prefix + "." + eventType
}

// HandleEvent implements EventHandler.
func (p *NATSPublisher) HandleEvent(_ context.Context, event *RecordEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.ID, err)
	}

	subject := p.Subject(event.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", subject, err)
	}

	p.logger.Debug("event published", "subject", subject, "event_id", event.ID)
	return nil
}
