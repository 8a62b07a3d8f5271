package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

func seedMatchedGroup(t *testing.T, store *memStore) model.JointLoanGroup {
	t.Helper()
	now := time.Now().UTC().Add(-time.Hour)

	g, err := model.NewJointLoanGroup(
		"farmer-1", decimal.NewFromInt(10000), decimal.NewFromInt(4000),
		decimal.NewFromInt(2000), 12, "shared cold storage", now)
	require.NoError(t, err)
	g, err = g.Join("farmer-2", decimal.NewFromInt(6000), "packing line", now)
	require.NoError(t, err)
	g, err = g.ConfirmMember("farmer-1", now)
	require.NoError(t, err)
	g, err = g.ConfirmMember("farmer-2", now)
	require.NoError(t, err)
	require.True(t, g.Status().Equal(valueobject.GroupStatusMatched))

	g = g.ClearEvents()
	store.groups[g.ID()] = g
	return g
}

func TestConfirmAndApply_FansOutOneApplicationPerMember(t *testing.T) {
	uow := newFakeUnitOfWork()
	notifier := &fakeNotifier{}
	uc := NewConfirmAndApplyUseCase(uow, notifier)
	group := seedMatchedGroup(t, uow.store)

	resp, err := uc.Execute(context.Background(), dto.ConfirmAndApplyRequest{GroupID: group.ID()})
	require.NoError(t, err)

	assert.Equal(t, group.ID(), resp.GroupID)
	require.Len(t, resp.ApplicationIDs, 2)
	require.Len(t, uow.store.apps, 2)

	stakes := map[string]decimal.Decimal{
		"farmer-1": decimal.NewFromInt(4000),
		"farmer-2": decimal.NewFromInt(6000),
	}
	for _, appID := range resp.ApplicationIDs {
		app := uow.store.apps[appID]
		assert.True(t, app.Status().Equal(valueobject.FinancingStatusApplied))
		assert.Equal(t, group.ID(), app.GroupID(), "each application links back to the group")
		assert.Equal(t, 12, app.TermMonths())
		assert.True(t, app.Amount().Equal(stakes[app.FarmerID()]),
			"each member borrows their own stake")
		assert.Equal(t, []string{"submit"}, uow.store.timelineActions(appID))
	}

	saved := uow.store.groups[group.ID()]
	assert.True(t, saved.Status().Equal(valueobject.GroupStatusApplied))
	for _, m := range saved.Members() {
		assert.NotEmpty(t, m.FinancingID, "member %s carries their application", m.FarmerID)
	}

	assert.ElementsMatch(t, []string{"group.applied", "group.applied"}, notifier.kinds())
	assert.NotEmpty(t, uow.store.outbox)
}

func TestConfirmAndApply_RequiresMatchedGroup(t *testing.T) {
	uow := newFakeUnitOfWork()
	uc := NewConfirmAndApplyUseCase(uow, &fakeNotifier{})

	g, err := model.NewJointLoanGroup(
		"farmer-1", decimal.NewFromInt(10000), decimal.NewFromInt(4000),
		decimal.NewFromInt(2000), 12, "", time.Now().UTC())
	require.NoError(t, err)
	uow.store.groups[g.ID()] = g.ClearEvents()

	_, err = uc.Execute(context.Background(), dto.ConfirmAndApplyRequest{GroupID: g.ID()})
	require.Error(t, err)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeInvalidState))
	assert.Empty(t, uow.store.apps, "no fan-out happens before the group is matched")
}

func TestConfirmAndApply_UnknownGroup(t *testing.T) {
	uow := newFakeUnitOfWork()
	uc := NewConfirmAndApplyUseCase(uow, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), dto.ConfirmAndApplyRequest{GroupID: "missing"})
	require.Error(t, err)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeNotFound))
}
