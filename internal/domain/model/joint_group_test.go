package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

func newTestGroup(t *testing.T) JointLoanGroup {
	t.Helper()
	g, err := NewJointLoanGroup(
		"farmer-1",
		decimal.NewFromInt(10000), // target
		decimal.NewFromInt(4000),  // creator stake
		decimal.NewFromInt(2000),  // solo minimum, recorded for audit
		12,
		"irrigation pumps",
		time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return g
}

func TestNewJointLoanGroup_CreatorIsFirstPendingMember(t *testing.T) {
	g := newTestGroup(t)

	assert.True(t, g.Status().Equal(valueobject.GroupStatusMatching))
	members := g.Members()
	require.Len(t, members, 1)
	assert.Equal(t, "farmer-1", members[0].FarmerID)
	assert.True(t, members[0].Status.Equal(valueobject.MemberStatusPending))
	assert.True(t, g.CommittedAmount().Equal(decimal.NewFromInt(4000)))
	assert.True(t, g.ConfirmedAmount().IsZero())
	assert.True(t, g.RemainingCapacity().Equal(decimal.NewFromInt(6000)))
}

func TestNewJointLoanGroup_Validation(t *testing.T) {
	now := time.Now().UTC()

	_, err := NewJointLoanGroup("", decimal.NewFromInt(10000), decimal.NewFromInt(4000),
		decimal.NewFromInt(2000), 12, "", now)
	assert.Error(t, err, "missing creator")

	_, err = NewJointLoanGroup("farmer-1", decimal.Zero, decimal.NewFromInt(4000),
		decimal.NewFromInt(2000), 12, "", now)
	assert.Error(t, err, "non-positive target")

	_, err = NewJointLoanGroup("farmer-1", decimal.NewFromInt(10000), decimal.NewFromInt(12000),
		decimal.NewFromInt(2000), 12, "", now)
	assert.Error(t, err, "creator stake over the target")

	_, err = NewJointLoanGroup("farmer-1", decimal.NewFromInt(10000), decimal.NewFromInt(4000),
		decimal.NewFromInt(2000), 0, "", now)
	assert.Error(t, err, "zero term")
}

func TestJointLoanGroup_JoinRespectsCapacity(t *testing.T) {
	now := time.Now().UTC()
	g := newTestGroup(t)

	g, err := g.Join("farmer-2", decimal.NewFromInt(3000), "seed stock", now)
	require.NoError(t, err)
	assert.True(t, g.CommittedAmount().Equal(decimal.NewFromInt(7000)))

	_, err = g.Join("farmer-3", decimal.NewFromInt(3001), "", now)
	require.Error(t, err, "would exceed the target")
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeValidation))

	g, err = g.Join("farmer-3", decimal.NewFromInt(3000), "", now)
	require.NoError(t, err, "an exact fill is allowed")
	assert.True(t, g.RemainingCapacity().IsZero())
}

func TestJointLoanGroup_JoinRejectsDuplicateMember(t *testing.T) {
	now := time.Now().UTC()
	g := newTestGroup(t)

	_, err := g.Join("farmer-1", decimal.NewFromInt(1000), "", now)
	require.Error(t, err, "the creator already holds a membership")
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeInvalidState))

	g, err = g.Join("farmer-2", decimal.NewFromInt(2000), "", now)
	require.NoError(t, err)
	_, err = g.Join("farmer-2", decimal.NewFromInt(1000), "", now)
	assert.Error(t, err, "one active membership per farmer")
}

func TestJointLoanGroup_QuitFreesCapacityForRejoining(t *testing.T) {
	now := time.Now().UTC()
	g := newTestGroup(t)

	g, err := g.Join("farmer-2", decimal.NewFromInt(6000), "", now)
	require.NoError(t, err)

	g, err = g.Quit("farmer-2", now)
	require.NoError(t, err)
	assert.True(t, g.RemainingCapacity().Equal(decimal.NewFromInt(6000)))
	assert.False(t, g.HasActiveMember("farmer-2"))

	g, err = g.Join("farmer-2", decimal.NewFromInt(5000), "", now)
	require.NoError(t, err, "a cancelled membership does not block rejoining")
	assert.True(t, g.HasActiveMember("farmer-2"))
}

func TestJointLoanGroup_ConfirmUntilMatched(t *testing.T) {
	now := time.Now().UTC()
	g := newTestGroup(t)

	g, err := g.Join("farmer-2", decimal.NewFromInt(6000), "", now)
	require.NoError(t, err)

	g, err = g.ConfirmMember("farmer-1", now)
	require.NoError(t, err)
	assert.True(t, g.Status().Equal(valueobject.GroupStatusMatching),
		"confirmed 4000 of 10000, still matching")
	assert.True(t, g.ConfirmedAmount().Equal(decimal.NewFromInt(4000)))

	_, err = g.ConfirmMember("farmer-1", now)
	assert.Error(t, err, "already confirmed")

	g, err = g.ConfirmMember("farmer-2", now)
	require.NoError(t, err)
	assert.True(t, g.Status().Equal(valueobject.GroupStatusMatched),
		"confirmed stakes reached the target")

	_, err = g.Join("farmer-3", decimal.NewFromInt(100), "", now)
	assert.Error(t, err, "a matched group accepts no new members")
}

func TestJointLoanGroup_ConfirmUnknownMember(t *testing.T) {
	now := time.Now().UTC()
	g := newTestGroup(t)

	_, err := g.ConfirmMember("farmer-99", now)
	require.Error(t, err)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeNotFound))
}

func TestJointLoanGroup_ConfirmedMemberCannotQuitAfterMatched(t *testing.T) {
	now := time.Now().UTC()
	g := newTestGroup(t)

	g, err := g.Join("farmer-2", decimal.NewFromInt(6000), "", now)
	require.NoError(t, err)
	g, err = g.ConfirmMember("farmer-1", now)
	require.NoError(t, err)

	// While still MATCHING a confirmed member may back out.
	quitted, err := g.Quit("farmer-1", now)
	require.NoError(t, err)
	assert.False(t, quitted.HasActiveMember("farmer-1"))

	g, err = g.ConfirmMember("farmer-2", now)
	require.NoError(t, err)
	require.True(t, g.Status().Equal(valueobject.GroupStatusMatched))

	_, err = g.Quit("farmer-1", now)
	require.Error(t, err)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeInvalidState))
}

func TestJointLoanGroup_MarkApplied(t *testing.T) {
	now := time.Now().UTC()
	g := newTestGroup(t)

	g, err := g.Join("farmer-2", decimal.NewFromInt(6000), "", now)
	require.NoError(t, err)
	g, err = g.ConfirmMember("farmer-1", now)
	require.NoError(t, err)
	g, err = g.ConfirmMember("farmer-2", now)
	require.NoError(t, err)

	_, err = g.MarkApplied(map[string]string{"farmer-1": "app-1"}, now)
	require.Error(t, err, "every confirmed member needs an application")

	applied, err := g.MarkApplied(map[string]string{
		"farmer-1": "app-1",
		"farmer-2": "app-2",
	}, now)
	require.NoError(t, err)
	assert.True(t, applied.Status().Equal(valueobject.GroupStatusApplied))

	byFarmer := map[string]string{}
	for _, m := range applied.Members() {
		byFarmer[m.FarmerID] = m.FinancingID
	}
	assert.Equal(t, "app-1", byFarmer["farmer-1"])
	assert.Equal(t, "app-2", byFarmer["farmer-2"])

	_, err = applied.Quit("farmer-1", now)
	assert.Error(t, err, "membership is final once applied")
	_, err = applied.Cancel("too late", now)
	assert.Error(t, err, "an applied group cannot be cancelled")
}

func TestJointLoanGroup_MarkAppliedRequiresMatched(t *testing.T) {
	now := time.Now().UTC()
	g := newTestGroup(t)

	_, err := g.MarkApplied(map[string]string{"farmer-1": "app-1"}, now)
	require.Error(t, err)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeInvalidState))
}

func TestJointLoanGroup_CancelDissolvesAllMembers(t *testing.T) {
	now := time.Now().UTC()
	g := newTestGroup(t)

	g, err := g.Join("farmer-2", decimal.NewFromInt(3000), "", now)
	require.NoError(t, err)

	cancelled, err := g.Cancel("not enough interest", now)
	require.NoError(t, err)
	assert.True(t, cancelled.Status().Equal(valueobject.GroupStatusCancelled))
	for _, m := range cancelled.Members() {
		assert.True(t, m.Status.Equal(valueobject.MemberStatusCancelled))
	}

	_, err = cancelled.Cancel("again", now)
	assert.Error(t, err)
}
