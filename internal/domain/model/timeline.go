package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// TimelineEntry is one append-only audit row for a financing application.
// Every state transition writes exactly one entry in the same transaction as
// the primary write.
type TimelineEntry struct {
	ID          string
	FinancingID string
	ActorType   valueobject.ActorType
	ActorID     string
	Action      string
	Note        string
	CreatedAt   time.Time
}

// NewTimelineEntry creates an audit row.
func NewTimelineEntry(
	financingID string,
	actorType valueobject.ActorType,
	actorID, action, note string,
	now time.Time,
) (TimelineEntry, error) {
	if financingID == "" {
		return TimelineEntry{}, valueobject.NewValidation("financing ID is required")
	}
	if action == "" {
		return TimelineEntry{}, valueobject.NewValidation("action is required")
	}

	return TimelineEntry{
		ID:          uuid.New().String(),
		FinancingID: financingID,
		ActorType:   actorType,
		ActorID:     actorID,
		Action:      action,
		Note:        note,
		CreatedAt:   now,
	}, nil
}
