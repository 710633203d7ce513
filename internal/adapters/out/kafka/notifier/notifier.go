// Package notifier publishes fulfillment notifications.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// DefaultTopic is where notification events land when no topic is configured.
const DefaultTopic = "fulfillment.notifications"

// messageWriter is the part of *kafka.Writer the notifier needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Event is the JSON body consumed by the push and SMS workers.
type Event struct {
	RecipientID   string         `json:"recipient_id"`
	RecipientRole string         `json:"recipient_role"`
	EventType     string         `json:"event_type"`
	Payload       map[string]any `json:"payload,omitempty"`
	OccurredAt    time.Time      `json:"occurred_at"`
}

var _ ports.Notifier = (*KafkaNotifier)(nil)

// KafkaNotifier writes one message per notification, keyed by recipient so one
// recipient's events stay ordered within a partition.
type KafkaNotifier struct {
	writer messageWriter
	now    func() time.Time
}

func NewKafkaNotifier(writer messageWriter) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, now: func() time.Time { return time.Now().UTC() }}
}

// NewWriter builds the producer used in production.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	if topic == "" {
		topic = DefaultTopic
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

func (n *KafkaNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	event := Event{
		RecipientID:   notification.RecipientID.String(),
		RecipientRole: string(notification.RecipientRole),
		EventType:     string(notification.EventType),
		Payload:       notification.Payload,
		OccurredAt:    n.now(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	if err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.RecipientID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}); err != nil {
		return fmt.Errorf("failed to publish %s notification: %w", event.EventType, err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier logs notifications instead of publishing them. It backs local runs
// without a broker.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	n.logger.InfoContext(ctx, "notification",
		slog.String("recipient_id", notification.RecipientID.String()),
		slog.String("recipient_role", string(notification.RecipientRole)),
		slog.String("event_type", string(notification.EventType)),
		slog.Any("payload", notification.Payload),
	)
	return nil
}
