package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrobank/financing-service/pkg/events"
	pkgkafka "github.com/agrobank/financing-service/pkg/kafka"
)

// OutboxRelay moves stored domain events from the outbox table to Kafka.
// Publishing is at-least-once: an entry is marked published only after the
// broker accepted it, so consumers must deduplicate on event_id.
type OutboxRelay struct {
	outbox       events.OutboxRepository
	producer     *pkgkafka.Producer
	topic        string
	pollInterval time.Duration
	batchSize    int
	logger       *slog.Logger
}

// NewOutboxRelay creates a relay that polls the outbox at pollInterval.
func NewOutboxRelay(
	outbox events.OutboxRepository,
	producer *pkgkafka.Producer,
	topic string,
	pollInterval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *OutboxRelay {
	return &OutboxRelay{
		outbox:       outbox,
		producer:     producer,
		topic:        topic,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Run polls until ctx is cancelled.
func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if err := r.relayBatch(ctx); err != nil {
				r.logger.ErrorContext(ctx, "outbox relay batch failed", "error", err)
			}
		}
	}
}

func (r *OutboxRelay) relayBatch(ctx context.Context) error {
	entries, err := r.outbox.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		return fmt.Errorf("fetch unpublished: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		messages = append(messages, pkgkafka.Message{
			Key:   []byte(e.AggregateID),
			Value: e.Payload,
			Headers: map[string]string{
				"event_type":     e.EventType,
				"aggregate_type": e.AggregateType,
				"event_id":       e.ID,
			},
		})
		ids = append(ids, e.ID)
	}

	if err := r.producer.Publish(ctx, r.topic, messages...); err != nil {
		return fmt.Errorf("publish batch: %w", err)
	}
	if err := r.outbox.MarkPublished(ctx, ids); err != nil {
		return fmt.Errorf("mark published: %w", err)
	}

	r.logger.DebugContext(ctx, "relayed outbox entries", "count", len(ids))
	return nil
}
