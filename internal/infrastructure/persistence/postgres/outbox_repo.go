package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/agrobank/financing-service/pkg/events"
	pgdb "github.com/agrobank/financing-service/pkg/postgres"
)

// OutboxRepo implements events.OutboxRepository on PostgreSQL.
type OutboxRepo struct {
	q pgdb.Querier
}

// NewOutboxRepo creates a repository backed by PostgreSQL.
func NewOutboxRepo(q pgdb.Querier) *OutboxRepo {
	return &OutboxRepo{q: q}
}

// Store inserts outbox entries in the caller's transaction.
func (r *OutboxRepo) Store(ctx context.Context, entries []events.OutboxEntry) error {
	query := `
		INSERT INTO outbox (
			id, aggregate_id, aggregate_type, event_type, payload, created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`
	for _, e := range entries {
		_, err := r.q.Exec(ctx, query,
			e.ID, e.AggregateID, e.AggregateType, e.EventType, e.Payload, e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("store outbox entry: %w", err)
		}
	}
	return nil
}

// FetchUnpublished returns entries that have not been published yet, oldest
// first.
func (r *OutboxRepo) FetchUnpublished(ctx context.Context, batchSize int) ([]events.OutboxEntry, error) {
	query := `
		SELECT id, aggregate_id, aggregate_type, event_type, payload, created_at, published_at
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1
	`
	rows, err := r.q.Query(ctx, query, batchSize)
	if err != nil {
		return nil, fmt.Errorf("fetch unpublished outbox entries: %w", err)
	}
	defer rows.Close()

	var result []events.OutboxEntry
	for rows.Next() {
		var e events.OutboxEntry
		err := rows.Scan(
			&e.ID, &e.AggregateID, &e.AggregateType, &e.EventType,
			&e.Payload, &e.CreatedAt, &e.PublishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// MarkPublished stamps entries as published.
func (r *OutboxRepo) MarkPublished(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE outbox SET published_at = $1 WHERE id = ANY($2)`
	if _, err := r.q.Exec(ctx, query, time.Now(), ids); err != nil {
		return fmt.Errorf("mark outbox entries published: %w", err)
	}
	return nil
}
