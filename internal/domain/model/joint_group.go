package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrobank/financing-service/internal/domain/event"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// JointLoanGroup aggregate root (members are part of the aggregate)
// ---------------------------------------------------------------------------

// JointLoanMember is one farmer's stake in a joint-loan group.
type JointLoanMember struct {
	ID          string
	GroupID     string
	FarmerID    string
	Amount      decimal.Decimal
	Purpose     string
	Status      valueobject.MemberStatus
	FinancingID string
	JoinedAt    time.Time
	ConfirmedAt time.Time
}

// JointLoanGroup pools several farmers' sub-minimum requests toward a target
// amount. Members transition individually; the group moves
// MATCHING -> MATCHED -> APPLIED, or to CANCELLED.
type JointLoanGroup struct {
	id           string
	creatorID    string
	targetAmount decimal.Decimal
	minAmount    decimal.Decimal
	termMonths   int
	status       valueobject.GroupStatus
	members      []JointLoanMember
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// NewJointLoanGroup opens a group with the creator as its first PENDING
// member. minAmount is the configured solo financing floor, recorded for
// audit.
func NewJointLoanGroup(
	creatorID string,
	targetAmount, creatorAmount, minAmount decimal.Decimal,
	termMonths int,
	purpose string,
	now time.Time,
) (JointLoanGroup, error) {
	if creatorID == "" {
		return JointLoanGroup{}, valueobject.NewValidation("creator ID is required")
	}
	if targetAmount.LessThanOrEqual(decimal.Zero) {
		return JointLoanGroup{}, valueobject.NewValidation("target amount must be positive, got %s", targetAmount)
	}
	if creatorAmount.LessThanOrEqual(decimal.Zero) {
		return JointLoanGroup{}, valueobject.NewValidation("creator stake must be positive, got %s", creatorAmount)
	}
	if creatorAmount.GreaterThan(targetAmount) {
		return JointLoanGroup{}, valueobject.NewValidation(
			"creator stake %s exceeds target amount %s", creatorAmount, targetAmount)
	}
	if termMonths < 1 || termMonths > 120 {
		return JointLoanGroup{}, valueobject.NewValidation("term months must be in [1,120], got %d", termMonths)
	}

	id := uuid.New().String()
	g := JointLoanGroup{
		id:           id,
		creatorID:    creatorID,
		targetAmount: targetAmount,
		minAmount:    minAmount,
		termMonths:   termMonths,
		status:       valueobject.GroupStatusMatching,
		members: []JointLoanMember{{
			ID:       uuid.New().String(),
			GroupID:  id,
			FarmerID: creatorID,
			Amount:   creatorAmount,
			Purpose:  purpose,
			Status:   valueobject.MemberStatusPending,
			JoinedAt: now,
		}},
		version:   1,
		createdAt: now,
		updatedAt: now,
	}

	g.domainEvents = append(g.domainEvents,
		event.NewGroupCreated(id, creatorID, targetAmount, creatorAmount, termMonths))
	return g, nil
}

// ReconstructJointLoanGroup rebuilds the aggregate from persistence.
func ReconstructJointLoanGroup(
	id, creatorID string,
	targetAmount, minAmount decimal.Decimal,
	termMonths int,
	status valueobject.GroupStatus,
	members []JointLoanMember,
	version int,
	createdAt, updatedAt time.Time,
) JointLoanGroup {
	return JointLoanGroup{
		id:           id,
		creatorID:    creatorID,
		targetAmount: targetAmount,
		minAmount:    minAmount,
		termMonths:   termMonths,
		status:       status,
		members:      members,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Transitions
// ---------------------------------------------------------------------------

// Join adds a farmer as a PENDING member. A farmer may hold at most one
// non-cancelled membership, and the committed total (pending plus confirmed)
// never exceeds the target amount.
func (g JointLoanGroup) Join(farmerID string, amount decimal.Decimal, purpose string, now time.Time) (JointLoanGroup, error) {
	if !g.status.Equal(valueobject.GroupStatusMatching) {
		return g, valueobject.NewInvalidState("group %s is not accepting members, status is %s", g.id, g.status)
	}
	if farmerID == "" {
		return g, valueobject.NewValidation("farmer ID is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return g, valueobject.NewValidation("stake must be positive, got %s", amount)
	}
	if g.hasActiveMember(farmerID) {
		return g, valueobject.NewInvalidState("farmer %s already has a membership in group %s", farmerID, g.id)
	}
	if g.CommittedAmount().Add(amount).GreaterThan(g.targetAmount) {
		return g, valueobject.NewValidation(
			"stake %s would push committed total over the target %s (remaining %s)",
			amount, g.targetAmount, g.targetAmount.Sub(g.CommittedAmount()))
	}

	next := g.copy()
	next.members = append(next.members, JointLoanMember{
		ID:       uuid.New().String(),
		GroupID:  g.id,
		FarmerID: farmerID,
		Amount:   amount,
		Purpose:  purpose,
		Status:   valueobject.MemberStatusPending,
		JoinedAt: now,
	})
	next.updatedAt = now
	next.domainEvents = append(next.domainEvents, event.NewGroupMemberJoined(g.id, farmerID, amount))
	return next, nil
}

// ConfirmMember moves one PENDING member to CONFIRMED. When confirmed stakes
// reach the target the group becomes MATCHED.
func (g JointLoanGroup) ConfirmMember(farmerID string, now time.Time) (JointLoanGroup, error) {
	if !g.status.Equal(valueobject.GroupStatusMatching) {
		return g, valueobject.NewInvalidState("group %s is not confirmable, status is %s", g.id, g.status)
	}

	next := g.copy()
	idx := next.activeMemberIndex(farmerID)
	if idx < 0 {
		return g, valueobject.NotFound("group member", farmerID)
	}
	m := next.members[idx]
	if !m.Status.Equal(valueobject.MemberStatusPending) {
		return g, valueobject.NewInvalidState("member %s is %s, only PENDING members can confirm", farmerID, m.Status)
	}

	m.Status = valueobject.MemberStatusConfirmed
	m.ConfirmedAt = now
	next.members[idx] = m
	next.updatedAt = now
	next.domainEvents = append(next.domainEvents, event.NewGroupMemberConfirmed(g.id, farmerID, m.Amount))

	if next.ConfirmedAmount().GreaterThanOrEqual(g.targetAmount) {
		next.status = valueobject.GroupStatusMatched
		next.domainEvents = append(next.domainEvents,
			event.NewGroupMatched(g.id, next.ConfirmedAmount(), next.confirmedCount()))
	}
	return next, nil
}

// Quit cancels a membership, freeing its stake for new joiners. PENDING
// members may quit until the group applies; CONFIRMED members only while the
// group is still MATCHING.
func (g JointLoanGroup) Quit(farmerID string, now time.Time) (JointLoanGroup, error) {
	if g.status.Equal(valueobject.GroupStatusApplied) || g.status.Equal(valueobject.GroupStatusCancelled) {
		return g, valueobject.NewInvalidState("group %s is %s, membership is final", g.id, g.status)
	}

	next := g.copy()
	idx := next.activeMemberIndex(farmerID)
	if idx < 0 {
		return g, valueobject.NotFound("group member", farmerID)
	}
	m := next.members[idx]
	if m.Status.Equal(valueobject.MemberStatusConfirmed) && !g.status.Equal(valueobject.GroupStatusMatching) {
		return g, valueobject.NewInvalidState(
			"confirmed member %s cannot quit group %s in status %s", farmerID, g.id, g.status)
	}

	m.Status = valueobject.MemberStatusCancelled
	next.members[idx] = m
	next.updatedAt = now
	next.domainEvents = append(next.domainEvents, event.NewGroupMemberQuit(g.id, farmerID))
	return next, nil
}

// MarkApplied records the fan-out result: every CONFIRMED member now owns an
// independent financing application. Valid only from MATCHED with confirmed
// stakes covering the target.
func (g JointLoanGroup) MarkApplied(applicationIDs map[string]string, now time.Time) (JointLoanGroup, error) {
	if !g.status.Equal(valueobject.GroupStatusMatched) {
		return g, valueobject.NewInvalidState("group %s is not ready to apply, status is %s", g.id, g.status)
	}
	if g.ConfirmedAmount().LessThan(g.targetAmount) {
		return g, valueobject.NewInvalidState(
			"confirmed amount %s has not reached target %s", g.ConfirmedAmount(), g.targetAmount)
	}

	next := g.copy()
	ids := make([]string, 0, len(applicationIDs))
	for i, m := range next.members {
		if !m.Status.Equal(valueobject.MemberStatusConfirmed) {
			continue
		}
		appID, ok := applicationIDs[m.FarmerID]
		if !ok || appID == "" {
			return g, valueobject.NewInvalidState("missing application for confirmed member %s", m.FarmerID)
		}
		m.FinancingID = appID
		next.members[i] = m
		ids = append(ids, appID)
	}

	next.status = valueobject.GroupStatusApplied
	next.updatedAt = now
	next.domainEvents = append(next.domainEvents, event.NewGroupApplied(g.id, ids))
	return next, nil
}

// Cancel dissolves a group that has not applied yet.
func (g JointLoanGroup) Cancel(reason string, now time.Time) (JointLoanGroup, error) {
	if g.status.Equal(valueobject.GroupStatusApplied) || g.status.Equal(valueobject.GroupStatusCancelled) {
		return g, valueobject.NewInvalidState("group %s cannot be cancelled, status is %s", g.id, g.status)
	}
	next := g.copy()
	for i, m := range next.members {
		if m.Status.Equal(valueobject.MemberStatusCancelled) {
			continue
		}
		m.Status = valueobject.MemberStatusCancelled
		next.members[i] = m
	}
	next.status = valueobject.GroupStatusCancelled
	next.updatedAt = now
	next.domainEvents = append(next.domainEvents, event.NewGroupCancelled(g.id, reason))
	return next, nil
}

// ---------------------------------------------------------------------------
// Derived values
// ---------------------------------------------------------------------------

// ConfirmedAmount sums the stakes of CONFIRMED members.
func (g JointLoanGroup) ConfirmedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, m := range g.members {
		if m.Status.Equal(valueobject.MemberStatusConfirmed) {
			total = total.Add(m.Amount)
		}
	}
	return total
}

// CommittedAmount sums the stakes of PENDING and CONFIRMED members.
func (g JointLoanGroup) CommittedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, m := range g.members {
		if !m.Status.Equal(valueobject.MemberStatusCancelled) {
			total = total.Add(m.Amount)
		}
	}
	return total
}

// RemainingCapacity is how much stake the group can still accept.
func (g JointLoanGroup) RemainingCapacity() decimal.Decimal {
	return g.targetAmount.Sub(g.CommittedAmount())
}

// HasActiveMember reports whether the farmer holds a PENDING or CONFIRMED
// membership.
func (g JointLoanGroup) HasActiveMember(farmerID string) bool {
	return g.hasActiveMember(farmerID)
}

func (g JointLoanGroup) hasActiveMember(farmerID string) bool {
	return g.activeMemberIndex(farmerID) >= 0
}

func (g JointLoanGroup) activeMemberIndex(farmerID string) int {
	for i, m := range g.members {
		if m.FarmerID == farmerID && !m.Status.Equal(valueobject.MemberStatusCancelled) {
			return i
		}
	}
	return -1
}

func (g JointLoanGroup) confirmedCount() int {
	n := 0
	for _, m := range g.members {
		if m.Status.Equal(valueobject.MemberStatusConfirmed) {
			n++
		}
	}
	return n
}

func (g JointLoanGroup) copy() JointLoanGroup {
	next := g
	next.members = make([]JointLoanMember, len(g.members))
	copy(next.members, g.members)
	next.domainEvents = copyEvents(g.domainEvents)
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (g JointLoanGroup) ID() string                          { return g.id }
func (g JointLoanGroup) CreatorID() string                   { return g.creatorID }
func (g JointLoanGroup) TargetAmount() decimal.Decimal       { return g.targetAmount }
func (g JointLoanGroup) MinAmount() decimal.Decimal          { return g.minAmount }
func (g JointLoanGroup) TermMonths() int                     { return g.termMonths }
func (g JointLoanGroup) Status() valueobject.GroupStatus     { return g.status }
func (g JointLoanGroup) Version() int                        { return g.version }
func (g JointLoanGroup) CreatedAt() time.Time                { return g.createdAt }
func (g JointLoanGroup) UpdatedAt() time.Time                { return g.updatedAt }
func (g JointLoanGroup) DomainEvents() []event.DomainEvent   { return g.domainEvents }

// Members returns a defensive copy of the member list.
func (g JointLoanGroup) Members() []JointLoanMember {
	out := make([]JointLoanMember, len(g.members))
	copy(out, g.members)
	return out
}

// ClearEvents returns a copy with an empty event list.
func (g JointLoanGroup) ClearEvents() JointLoanGroup {
	next := g.copy()
	next.domainEvents = nil
	return next
}
