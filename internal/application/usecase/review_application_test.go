package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/service"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

func TestReviewApplication_Approve(t *testing.T) {
	uow := newFakeUnitOfWork()
	notifier := &fakeNotifier{}
	uc := NewReviewApplicationUseCase(uow, notifier, service.NewCreditPolicy())
	app := seedApplication(t, uow.store)

	resp, err := uc.Execute(context.Background(), dto.ReviewApplicationRequest{
		ApplicationID: app.ID(),
		ReviewerID:    "officer-1",
		Decision:      dto.DecisionApprove,
		CreditScore:   720,
		InterestRate:  decimal.NewFromFloat(5.5),
		Comment:       "solid repayment history",
	})
	require.NoError(t, err)

	assert.Equal(t, "APPROVED", resp.Status)
	assert.Equal(t, 720, resp.CreditScore)

	saved := uow.store.apps[app.ID()]
	assert.True(t, saved.Status().Equal(valueobject.FinancingStatusApproved))
	assert.Equal(t, []string{"review:APPROVE"}, uow.store.timelineActions(app.ID()))
	assert.Equal(t, []string{"financing.reviewed"}, notifier.kinds())
	assert.NotEmpty(t, uow.store.outbox)
}

func TestReviewApplication_PolicyRefusesLowScore(t *testing.T) {
	uow := newFakeUnitOfWork()
	uc := NewReviewApplicationUseCase(uow, &fakeNotifier{}, service.NewCreditPolicy())
	app := seedApplication(t, uow.store)

	_, err := uc.Execute(context.Background(), dto.ReviewApplicationRequest{
		ApplicationID: app.ID(),
		ReviewerID:    "officer-1",
		Decision:      dto.DecisionApprove,
		CreditScore:   580,
		InterestRate:  decimal.NewFromFloat(5.5),
	})
	require.Error(t, err)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeValidation))

	saved := uow.store.apps[app.ID()]
	assert.True(t, saved.Status().Equal(valueobject.FinancingStatusApplied),
		"a refused approval leaves the application untouched")
	assert.Empty(t, uow.store.timeline)
}

func TestReviewApplication_Reject(t *testing.T) {
	uow := newFakeUnitOfWork()
	notifier := &fakeNotifier{}
	uc := NewReviewApplicationUseCase(uow, notifier, service.NewCreditPolicy())
	app := seedApplication(t, uow.store)

	resp, err := uc.Execute(context.Background(), dto.ReviewApplicationRequest{
		ApplicationID: app.ID(),
		ReviewerID:    "officer-1",
		Decision:      dto.DecisionReject,
		Comment:       "insufficient collateral",
	})
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", resp.Status)
	assert.Equal(t, []string{"review:REJECT"}, uow.store.timelineActions(app.ID()))
}

func TestReviewApplication_UnknownDecision(t *testing.T) {
	uow := newFakeUnitOfWork()
	uc := NewReviewApplicationUseCase(uow, &fakeNotifier{}, service.NewCreditPolicy())
	app := seedApplication(t, uow.store)

	_, err := uc.Execute(context.Background(), dto.ReviewApplicationRequest{
		ApplicationID: app.ID(),
		ReviewerID:    "officer-1",
		Decision:      "MAYBE",
	})
	require.Error(t, err)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeValidation))
}

func TestReviewApplication_NotFound(t *testing.T) {
	uow := newFakeUnitOfWork()
	uc := NewReviewApplicationUseCase(uow, &fakeNotifier{}, service.NewCreditPolicy())

	_, err := uc.Execute(context.Background(), dto.ReviewApplicationRequest{
		ApplicationID: "missing",
		ReviewerID:    "officer-1",
		Decision:      dto.DecisionReject,
		Comment:       "n/a",
	})
	require.Error(t, err)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeNotFound))
}
