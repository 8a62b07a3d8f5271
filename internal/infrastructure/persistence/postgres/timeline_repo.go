package postgres

import (
	"context"
	"fmt"

	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
	pgdb "github.com/agrobank/financing-service/pkg/postgres"
)

// TimelineRepo implements port.TimelineRepository. Entries are append-only.
type TimelineRepo struct {
	q pgdb.Querier
}

// NewTimelineRepo creates a repository backed by PostgreSQL.
func NewTimelineRepo(q pgdb.Querier) *TimelineRepo {
	return &TimelineRepo{q: q}
}

// Append inserts one audit entry.
func (r *TimelineRepo) Append(ctx context.Context, entry model.TimelineEntry) error {
	query := `
		INSERT INTO financing_timeline (
			id, financing_id, actor_type, actor_id, action, note, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.FinancingID, entry.ActorType.String(),
		nullString(entry.ActorID), entry.Action, nullString(entry.Note),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append timeline entry: %w", err)
	}
	return nil
}

// FindByFinancingID returns the audit trail of one financing, oldest first.
func (r *TimelineRepo) FindByFinancingID(ctx context.Context, financingID string) ([]model.TimelineEntry, error) {
	query := `
		SELECT id, financing_id, actor_type, actor_id, action, note, created_at
		FROM financing_timeline
		WHERE financing_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.q.Query(ctx, query, financingID)
	if err != nil {
		return nil, fmt.Errorf("query timeline: %w", err)
	}
	defer rows.Close()

	var result []model.TimelineEntry
	for rows.Next() {
		var (
			entry        model.TimelineEntry
			actorTypeStr string
			actorID      *string
			note         *string
		)
		err := rows.Scan(
			&entry.ID, &entry.FinancingID, &actorTypeStr,
			&actorID, &entry.Action, &note, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan timeline entry: %w", err)
		}

		actorType, err := valueobject.NewActorType(actorTypeStr)
		if err != nil {
			return nil, fmt.Errorf("parse actor type: %w", err)
		}
		entry.ActorType = actorType
		entry.ActorID = deref(actorID)
		entry.Note = deref(note)
		result = append(result, entry)
	}
	return result, rows.Err()
}
