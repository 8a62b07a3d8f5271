package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	pkgkafka "github.com/agrobank/financing-service/pkg/kafka"
)

// notification is the wire shape consumed by the notification service.
type notification struct {
	FarmerID  string         `json:"farmer_id"`
	EventKind string         `json:"event_kind"`
	Payload   map[string]any `json:"payload,omitempty"`
	SentAt    time.Time      `json:"sent_at"`
}

// KafkaNotifier implements port.NotificationPort by writing to a notifications
// topic. Delivery is fire-and-forget: failures are logged and swallowed so a
// broker outage never fails a financial write.
type KafkaNotifier struct {
	producer *pkgkafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaNotifier creates a notifier targeting the given topic.
func NewKafkaNotifier(producer *pkgkafka.Producer, topic string, logger *slog.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Notify publishes one notification keyed by farmer ID.
func (n *KafkaNotifier) Notify(ctx context.Context, farmerID, eventKind string, payload map[string]any) {
	value, err := json.Marshal(notification{
		FarmerID:  farmerID,
		EventKind: eventKind,
		Payload:   payload,
		SentAt:    time.Now(),
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "marshal notification", "event_kind", eventKind, "error", err)
		return
	}

	msg := pkgkafka.Message{
		Key:     []byte(farmerID),
		Value:   value,
		Headers: map[string]string{"event_kind": eventKind},
	}
	if err := n.producer.Publish(ctx, n.topic, msg); err != nil {
		n.logger.WarnContext(ctx, "notification delivery failed",
			"farmer_id", farmerID,
			"event_kind", eventKind,
			"error", err,
		)
	}
}
