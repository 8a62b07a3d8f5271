package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
	"github.com/agrobank/financing-service/pkg/events"
)

// memStore is an in-memory stand-in for the postgres repositories. It backs
// the fake unit of work so use cases run their full transaction script
// against real aggregates.
type memStore struct {
	apps      map[string]model.FinancingApplication
	rows      map[string]model.RepaymentSchedule
	records   []model.RepaymentRecord
	contracts map[string]model.FinancingContract
	groups    map[string]model.JointLoanGroup
	timeline  []model.TimelineEntry
	collector events.Collector
	outbox    []events.DomainEvent
}

func newMemStore() *memStore {
	return &memStore{
		apps:      map[string]model.FinancingApplication{},
		rows:      map[string]model.RepaymentSchedule{},
		contracts: map[string]model.FinancingContract{},
		groups:    map[string]model.JointLoanGroup{},
	}
}

func (s *memStore) Applications() port.ApplicationRepository { return memApps{s} }
func (s *memStore) Schedules() port.ScheduleRepository       { return memSchedules{s} }
func (s *memStore) Records() port.RecordRepository           { return memRecords{s} }
func (s *memStore) Contracts() port.ContractRepository       { return memContracts{s} }
func (s *memStore) Groups() port.GroupRepository             { return memGroups{s} }
func (s *memStore) Timeline() port.TimelineRepository        { return memTimeline{s} }
func (s *memStore) Events() *events.Collector                { return &s.collector }

func (s *memStore) timelineActions(financingID string) []string {
	var actions []string
	for _, e := range s.timeline {
		if e.FinancingID == financingID {
			actions = append(actions, e.Action)
		}
	}
	return actions
}

type memApps struct{ s *memStore }

func (r memApps) Save(_ context.Context, app model.FinancingApplication) error {
	r.s.apps[app.ID()] = app.ClearEvents()
	return nil
}

func (r memApps) FindByID(_ context.Context, id string) (model.FinancingApplication, error) {
	app, ok := r.s.apps[id]
	if !ok {
		return model.FinancingApplication{}, valueobject.NotFound("financing application", id)
	}
	return app, nil
}

func (r memApps) FindByFarmerID(_ context.Context, farmerID string) ([]model.FinancingApplication, error) {
	var out []model.FinancingApplication
	for _, app := range r.s.apps {
		if app.FarmerID() == farmerID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r memApps) FindByStatus(_ context.Context, status string, limit int) ([]model.FinancingApplication, error) {
	var out []model.FinancingApplication
	for _, app := range r.s.apps {
		if app.Status().String() == status {
			out = append(out, app)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type memSchedules struct{ s *memStore }

func (r memSchedules) SaveAll(ctx context.Context, rows []model.RepaymentSchedule) error {
	for _, row := range rows {
		if err := r.Save(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func (r memSchedules) Save(_ context.Context, row model.RepaymentSchedule) error {
	r.s.rows[row.ID()] = row
	return nil
}

func (r memSchedules) FindByFinancingID(_ context.Context, financingID string) ([]model.RepaymentSchedule, error) {
	var out []model.RepaymentSchedule
	for _, row := range r.s.rows {
		if row.FinancingID() == financingID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].InstallmentNumber() < out[j].InstallmentNumber()
	})
	return out, nil
}

func (r memSchedules) FindDueBefore(_ context.Context, date time.Time, limit int) ([]model.RepaymentSchedule, error) {
	var out []model.RepaymentSchedule
	for _, row := range r.s.rows {
		if row.Status().Equal(valueobject.ScheduleStatusPending) && row.DueDate().Before(date) {
			out = append(out, row)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type memRecords struct{ s *memStore }

func (r memRecords) Append(_ context.Context, records ...model.RepaymentRecord) error {
	r.s.records = append(r.s.records, records...)
	return nil
}

func (r memRecords) FindByFinancingID(_ context.Context, financingID string) ([]model.RepaymentRecord, error) {
	var out []model.RepaymentRecord
	for _, rec := range r.s.records {
		if rec.FinancingID == financingID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type memContracts struct{ s *memStore }

func (r memContracts) Save(_ context.Context, c model.FinancingContract) error {
	r.s.contracts[c.ID()] = c.ClearEvents()
	return nil
}

func (r memContracts) FindByID(_ context.Context, id string) (model.FinancingContract, error) {
	c, ok := r.s.contracts[id]
	if !ok {
		return model.FinancingContract{}, valueobject.NotFound("contract", id)
	}
	return c, nil
}

func (r memContracts) FindByFinancingID(_ context.Context, financingID string) (model.FinancingContract, error) {
	for _, c := range r.s.contracts {
		if c.FinancingID() == financingID {
			return c, nil
		}
	}
	return model.FinancingContract{}, valueobject.NotFound("contract for financing", financingID)
}

type memGroups struct{ s *memStore }

func (r memGroups) Save(_ context.Context, g model.JointLoanGroup) error {
	r.s.groups[g.ID()] = g.ClearEvents()
	return nil
}

func (r memGroups) FindByID(_ context.Context, id string) (model.JointLoanGroup, error) {
	g, ok := r.s.groups[id]
	if !ok {
		return model.JointLoanGroup{}, valueobject.NotFound("joint loan group", id)
	}
	return g, nil
}

func (r memGroups) FindMatching(
	_ context.Context,
	amount decimal.Decimal,
	excludeFarmerID string,
	limit int,
) ([]model.JointLoanGroup, error) {
	var out []model.JointLoanGroup
	for _, g := range r.s.groups {
		if !g.Status().Equal(valueobject.GroupStatusMatching) {
			continue
		}
		if g.RemainingCapacity().LessThan(amount) {
			continue
		}
		if g.HasActiveMember(excludeFarmerID) {
			continue
		}
		out = append(out, g)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type memTimeline struct{ s *memStore }

func (r memTimeline) Append(_ context.Context, entry model.TimelineEntry) error {
	r.s.timeline = append(r.s.timeline, entry)
	return nil
}

func (r memTimeline) FindByFinancingID(_ context.Context, financingID string) ([]model.TimelineEntry, error) {
	var out []model.TimelineEntry
	for _, e := range r.s.timeline {
		if e.FinancingID == financingID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeUnitOfWork runs fn against the shared memStore and, mirroring the real
// unit of work, drains collected events into the outbox on success.
type fakeUnitOfWork struct {
	store *memStore
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{store: newMemStore()}
}

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	if err := fn(ctx, u.store); err != nil {
		u.store.collector.Drain()
		return err
	}
	u.store.outbox = append(u.store.outbox, u.store.collector.Drain()...)
	return nil
}

// fakeNotifier records fire-and-forget notifications.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

type notifyCall struct {
	FarmerID  string
	EventKind string
	Payload   map[string]any
}

func (n *fakeNotifier) Notify(_ context.Context, farmerID, eventKind string, payload map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{FarmerID: farmerID, EventKind: eventKind, Payload: payload})
}

func (n *fakeNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.calls))
	for _, c := range n.calls {
		out = append(out, c.EventKind)
	}
	return out
}
