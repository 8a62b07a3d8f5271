package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/agrobank/financing-service/internal/domain/event"
	pkgkafka "github.com/agrobank/financing-service/pkg/kafka"
)

// Publisher implements port.EventPublisher using Kafka.
type Publisher struct {
	producer *pkgkafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewPublisher creates a Kafka-based event publisher targeting one topic.
func NewPublisher(producer *pkgkafka.Producer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to the configured topic, keyed by aggregate ID.
func (p *Publisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(evts))
	for _, evt := range evts {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			"topic", p.topic,
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"aggregate_type": evt.AggregateType(),
				"event_id":       evt.EventID(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}
	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}
	return nil
}
