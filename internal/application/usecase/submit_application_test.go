package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

func TestSubmitApplication_PersistsAndNotifies(t *testing.T) {
	uow := newFakeUnitOfWork()
	notifier := &fakeNotifier{}
	uc := NewSubmitApplicationUseCase(uow, notifier, decimal.NewFromInt(2000))

	resp, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{
		FarmerID:   "farmer-1",
		ProductID:  "product-7",
		Amount:     decimal.NewFromInt(50000),
		TermMonths: 24,
		Purpose:    "greenhouse expansion",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "APPLIED", resp.Status)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(50000)))

	saved, ok := uow.store.apps[resp.ID]
	require.True(t, ok, "the application must be persisted")
	assert.Equal(t, "farmer-1", saved.FarmerID())

	assert.Equal(t, []string{"submit"}, uow.store.timelineActions(resp.ID))
	require.Len(t, uow.store.outbox, 1, "the applied event goes to the outbox")
	assert.Equal(t, []string{"financing.applied"}, notifier.kinds())
}

func TestSubmitApplication_BelowMinimumRedirectsToGroups(t *testing.T) {
	uow := newFakeUnitOfWork()
	notifier := &fakeNotifier{}
	uc := NewSubmitApplicationUseCase(uow, notifier, decimal.NewFromInt(2000))

	// An open group with capacity for the sub-minimum request.
	group, err := model.NewJointLoanGroup(
		"farmer-9", decimal.NewFromInt(10000), decimal.NewFromInt(4000),
		decimal.NewFromInt(2000), 12, "shared harvester", time.Now().UTC())
	require.NoError(t, err)
	uow.store.groups[group.ID()] = group.ClearEvents()

	_, err = uc.Execute(context.Background(), dto.SubmitApplicationRequest{
		FarmerID:   "farmer-1",
		Amount:     decimal.NewFromInt(1500),
		TermMonths: 12,
		Purpose:    "seed stock",
	})
	require.Error(t, err)

	var below *valueobject.BelowMinimumError
	require.True(t, errors.As(err, &below))
	assert.True(t, below.Minimum.Equal(decimal.NewFromInt(2000)))
	assert.True(t, below.Requested.Equal(decimal.NewFromInt(1500)))
	require.Len(t, below.Candidates, 1)
	assert.Equal(t, group.ID(), below.Candidates[0].GroupID)

	assert.Empty(t, uow.store.apps, "nothing is persisted on the redirect")
	assert.Empty(t, notifier.kinds())
	assert.Empty(t, uow.store.outbox)
}

func TestSubmitApplication_InvalidRequestSavesNothing(t *testing.T) {
	uow := newFakeUnitOfWork()
	uc := NewSubmitApplicationUseCase(uow, &fakeNotifier{}, decimal.NewFromInt(2000))

	_, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{
		FarmerID:   "",
		Amount:     decimal.NewFromInt(50000),
		TermMonths: 24,
	})
	require.Error(t, err)
	assert.Empty(t, uow.store.apps)
	assert.Empty(t, uow.store.timeline)
}
