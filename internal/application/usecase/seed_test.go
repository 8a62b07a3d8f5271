package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// seedApplication stores a fresh APPLIED application for farmer-1.
func seedApplication(t *testing.T, store *memStore) model.FinancingApplication {
	t.Helper()
	app, err := model.NewFinancingApplication(
		"farmer-1", "product-7", "",
		decimal.NewFromInt(50000), 12, "greenhouse expansion",
		time.Now().UTC().Add(-48*time.Hour),
	)
	require.NoError(t, err)
	app = app.ClearEvents()
	store.apps[app.ID()] = app
	return app
}

// seedSignedApplication walks a seeded application to SIGNED with a contract
// attached, ready for disbursement.
func seedSignedApplication(t *testing.T, store *memStore) model.FinancingApplication {
	t.Helper()
	now := time.Now().UTC().Add(-24 * time.Hour)
	app := seedApplication(t, store)

	app, err := app.Approve("officer-1", decimal.NewFromInt(12), 720, "", now)
	require.NoError(t, err)
	app, err = app.AttachContract("contract-1", now)
	require.NoError(t, err)
	app, err = app.MarkSigned(now)
	require.NoError(t, err)

	app = app.ClearEvents()
	store.apps[app.ID()] = app
	return app
}

// seedRepayingApplication stores a REPAYING application with two open
// installment rows of 100 principal + 10 interest each.
func seedRepayingApplication(t *testing.T, store *memStore) (model.FinancingApplication, []model.RepaymentSchedule) {
	t.Helper()
	now := time.Now().UTC()
	app := seedSignedApplication(t, store)

	app, err := app.Disburse(decimal.NewFromInt(50000), now.AddDate(0, 1, 0), now)
	require.NoError(t, err)
	app, err = app.StartRepaying(now)
	require.NoError(t, err)
	app = app.ClearEvents()
	store.apps[app.ID()] = app

	rows := []model.RepaymentSchedule{
		seedScheduleRow(app.ID(), "row-1", 1, now.AddDate(0, 1, 0)),
		seedScheduleRow(app.ID(), "row-2", 2, now.AddDate(0, 2, 0)),
	}
	for _, row := range rows {
		store.rows[row.ID()] = row
	}
	return app, rows
}

func seedScheduleRow(financingID, id string, number int, dueDate time.Time) model.RepaymentSchedule {
	return model.ReconstructRepaymentSchedule(
		id, financingID, number, dueDate,
		decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.NewFromInt(110), decimal.Zero,
		valueobject.ScheduleStatusPending,
		time.Time{}, decimal.Zero,
		1, dueDate.AddDate(0, -2, 0), dueDate.AddDate(0, -2, 0),
	)
}
