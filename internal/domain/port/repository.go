package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/domain/event"
	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/pkg/events"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ApplicationRepository persists and retrieves financing applications.
// Save performs an optimistic version check and returns
// valueobject.ErrVersionConflict on concurrent modification.
type ApplicationRepository interface {
	Save(ctx context.Context, app model.FinancingApplication) error
	FindByID(ctx context.Context, id string) (model.FinancingApplication, error)
	FindByFarmerID(ctx context.Context, farmerID string) ([]model.FinancingApplication, error)
	FindByStatus(ctx context.Context, status string, limit int) ([]model.FinancingApplication, error)
}

// ScheduleRepository persists and retrieves repayment schedule rows.
type ScheduleRepository interface {
	SaveAll(ctx context.Context, rows []model.RepaymentSchedule) error
	Save(ctx context.Context, row model.RepaymentSchedule) error
	FindByFinancingID(ctx context.Context, financingID string) ([]model.RepaymentSchedule, error)
	// FindDueBefore returns unsettled PENDING rows whose due date passed,
	// grouped into the sweep batch.
	FindDueBefore(ctx context.Context, date time.Time, limit int) ([]model.RepaymentSchedule, error)
}

// RecordRepository appends and reads the immutable repayment ledger.
type RecordRepository interface {
	Append(ctx context.Context, records ...model.RepaymentRecord) error
	FindByFinancingID(ctx context.Context, financingID string) ([]model.RepaymentRecord, error)
}

// ContractRepository persists and retrieves financing contracts.
type ContractRepository interface {
	Save(ctx context.Context, c model.FinancingContract) error
	FindByID(ctx context.Context, id string) (model.FinancingContract, error)
	FindByFinancingID(ctx context.Context, financingID string) (model.FinancingContract, error)
}

// GroupRepository persists and retrieves joint-loan groups with their
// members. Save carries the same optimistic version discipline as
// ApplicationRepository.
type GroupRepository interface {
	Save(ctx context.Context, g model.JointLoanGroup) error
	FindByID(ctx context.Context, id string) (model.JointLoanGroup, error)
	// FindMatching returns MATCHING groups whose remaining capacity can
	// absorb amount, excluding groups the farmer already belongs to,
	// ordered FIFO by creation time.
	FindMatching(ctx context.Context, amount decimal.Decimal, excludeFarmerID string, limit int) ([]model.JointLoanGroup, error)
}

// TimelineRepository appends and reads the audit trail. Append failure fails
// the surrounding operation; the timeline shares the write's transaction.
type TimelineRepository interface {
	Append(ctx context.Context, entry model.TimelineEntry) error
	FindByFinancingID(ctx context.Context, financingID string) ([]model.TimelineEntry, error)
}

// ---------------------------------------------------------------------------
// Unit of work
// ---------------------------------------------------------------------------

// Repositories bundles the transaction-scoped repositories handed to a unit
// of work function. Events recorded on the collector are stored as outbox
// entries in the same transaction.
type Repositories interface {
	Applications() ApplicationRepository
	Schedules() ScheduleRepository
	Records() RecordRepository
	Contracts() ContractRepository
	Groups() GroupRepository
	Timeline() TimelineRepository
	Events() *events.Collector
}

// UnitOfWork runs fn inside a single transaction. Either every write in fn
// commits, including timeline entries and outbox rows, or none do.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External collaborator ports
// ---------------------------------------------------------------------------

// NotificationPort delivers fire-and-forget notifications. Failures are
// logged, never propagated into the financial write.
type NotificationPort interface {
	Notify(ctx context.Context, farmerID, eventKind string, payload map[string]any)
}

// ContractDocumentPort renders a contract document and returns its location.
type ContractDocumentPort interface {
	Render(ctx context.Context, c model.FinancingContract) (string, error)
}

// Actor is the resolved caller identity.
type Actor struct {
	ID   string
	Role string
}

// IdentityPort resolves the current caller from the request context. The
// financing core trusts this identity.
type IdentityPort interface {
	CurrentActor(ctx context.Context) (Actor, error)
}
