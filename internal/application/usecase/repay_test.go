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

func TestRepay_TargetedInstallment(t *testing.T) {
	uow := newFakeUnitOfWork()
	notifier := &fakeNotifier{}
	uc := NewRepayUseCase(uow, notifier, service.NewRepaymentAllocator())
	app, rows := seedRepayingApplication(t, uow.store)

	resp, err := uc.Execute(context.Background(), dto.RepayRequest{
		FinancingID:   app.ID(),
		ScheduleID:    rows[0].ID(),
		Amount:        decimal.NewFromInt(110),
		PaymentMethod: "WALLET",
		TransactionID: "txn-1",
		FarmerID:      "farmer-1",
	})
	require.NoError(t, err)

	assert.False(t, resp.Settled)
	assert.Equal(t, "REPAYING", resp.ApplicationStatus)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "NORMAL", resp.Records[0].RepaymentType)
	assert.True(t, resp.Records[0].Principal.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.Records[0].Interest.Equal(decimal.NewFromInt(10)))

	savedRow := uow.store.rows[rows[0].ID()]
	assert.True(t, savedRow.IsSettled())
	assert.False(t, uow.store.rows[rows[1].ID()].IsSettled())

	require.Len(t, uow.store.records, 1, "one ledger entry per touched row")
	assert.Equal(t, []string{"repay"}, uow.store.timelineActions(app.ID()))
	assert.Equal(t, []string{"financing.repayment_received"}, notifier.kinds())
}

func TestRepay_FullPayoffSettlesApplication(t *testing.T) {
	uow := newFakeUnitOfWork()
	notifier := &fakeNotifier{}
	uc := NewRepayUseCase(uow, notifier, service.NewRepaymentAllocator())
	app, _ := seedRepayingApplication(t, uow.store)

	// Untargeted lump sum covering both rows: 2 * 110.
	resp, err := uc.Execute(context.Background(), dto.RepayRequest{
		FinancingID:   app.ID(),
		Amount:        decimal.NewFromInt(220),
		PaymentMethod: "BANK_TRANSFER",
		FarmerID:      "farmer-1",
	})
	require.NoError(t, err)

	assert.True(t, resp.Settled)
	assert.Equal(t, "SETTLED", resp.ApplicationStatus)
	require.Len(t, resp.Records, 2)
	for _, r := range resp.Records {
		assert.Equal(t, "EARLY", r.RepaymentType)
	}

	saved := uow.store.apps[app.ID()]
	assert.True(t, saved.Status().Equal(valueobject.FinancingStatusSettled))
	assert.Equal(t, []string{"repay", "settle"}, uow.store.timelineActions(app.ID()))
	assert.NotEmpty(t, uow.store.outbox, "repayment and settlement events reach the outbox")
}

func TestRepay_RejectsNonRepayingApplication(t *testing.T) {
	uow := newFakeUnitOfWork()
	uc := NewRepayUseCase(uow, &fakeNotifier{}, service.NewRepaymentAllocator())
	app := seedApplication(t, uow.store)

	_, err := uc.Execute(context.Background(), dto.RepayRequest{
		FinancingID:   app.ID(),
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "WALLET",
		FarmerID:      "farmer-1",
	})
	require.Error(t, err)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeInvalidState))
	assert.Empty(t, uow.store.records)
}

func TestRepay_OverpaymentLeavesNothingBehind(t *testing.T) {
	uow := newFakeUnitOfWork()
	uc := NewRepayUseCase(uow, &fakeNotifier{}, service.NewRepaymentAllocator())
	app, _ := seedRepayingApplication(t, uow.store)

	_, err := uc.Execute(context.Background(), dto.RepayRequest{
		FinancingID:   app.ID(),
		Amount:        decimal.NewFromInt(500),
		PaymentMethod: "WALLET",
		FarmerID:      "farmer-1",
	})
	require.Error(t, err, "the payment exceeds the outstanding debt")
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeValidation))

	assert.Empty(t, uow.store.records)
	saved := uow.store.apps[app.ID()]
	assert.True(t, saved.Status().Equal(valueobject.FinancingStatusRepaying))
}
