package model

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

func newTestContract(t *testing.T) FinancingContract {
	t.Helper()
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	app := newTestApplication(t)
	approved, err := app.Approve("officer-1", decimal.NewFromFloat(5.5), 720, "", now)
	require.NoError(t, err)

	contract, err := NewFinancingContract(approved, now)
	require.NoError(t, err)
	return contract
}

func TestNewFinancingContract_FreezesApprovedTerms(t *testing.T) {
	contract := newTestContract(t)

	assert.True(t, contract.Status().Equal(valueobject.ContractStatusDraft))
	assert.True(t, contract.Amount().Equal(decimal.NewFromInt(50000)))
	assert.True(t, contract.InterestRate().Equal(decimal.NewFromFloat(5.5)))
	assert.Equal(t, 24, contract.TermMonths())
	assert.Equal(t, "farmer-1", contract.FarmerID())
	assert.True(t, strings.HasPrefix(contract.ContractNo(), "CT20250410-"),
		"contract number embeds the generation date, got %s", contract.ContractNo())
	require.Len(t, contract.DomainEvents(), 1)
}

func TestNewFinancingContract_RequiresApprovedApplication(t *testing.T) {
	now := time.Now().UTC()
	app := newTestApplication(t)

	_, err := NewFinancingContract(app, now)
	require.Error(t, err)
	assert.True(t, valueobject.IsCode(err, valueobject.ErrCodeInvalidState))
}

func TestFinancingContract_BothSignaturesComplete(t *testing.T) {
	now := time.Now().UTC()
	contract := newTestContract(t)

	afterFarmer, err := contract.SignByFarmer("s3://signatures/farmer-1.png", now)
	require.NoError(t, err)
	assert.True(t, afterFarmer.Status().Equal(valueobject.ContractStatusDraft),
		"one signature is not enough")
	assert.False(t, afterFarmer.IsFullySigned())

	signed, err := afterFarmer.SignByBank("s3://signatures/bank.png", now)
	require.NoError(t, err)
	assert.True(t, signed.Status().Equal(valueobject.ContractStatusSigned))
	assert.True(t, signed.IsFullySigned())
	assert.Equal(t, now, signed.FarmerSignedAt())
	assert.Equal(t, now, signed.BankSignedAt())
}

func TestFinancingContract_SignatureOrderDoesNotMatter(t *testing.T) {
	now := time.Now().UTC()
	contract := newTestContract(t)

	afterBank, err := contract.SignByBank("s3://signatures/bank.png", now)
	require.NoError(t, err)
	signed, err := afterBank.SignByFarmer("s3://signatures/farmer-1.png", now)
	require.NoError(t, err)
	assert.True(t, signed.IsFullySigned())
}

func TestFinancingContract_SignRejections(t *testing.T) {
	now := time.Now().UTC()
	contract := newTestContract(t)

	_, err := contract.SignByFarmer("", now)
	assert.Error(t, err, "signature URL is required")

	once, err := contract.SignByFarmer("s3://signatures/farmer-1.png", now)
	require.NoError(t, err)
	_, err = once.SignByFarmer("s3://signatures/farmer-1-again.png", now)
	assert.Error(t, err, "double farmer signature")

	signed, err := once.SignByBank("s3://signatures/bank.png", now)
	require.NoError(t, err)
	_, err = signed.SignByFarmer("s3://signatures/late.png", now)
	assert.Error(t, err, "a signed contract is immutable")
}

func TestFinancingContract_CancelOnlyFromDraft(t *testing.T) {
	now := time.Now().UTC()
	contract := newTestContract(t)

	cancelled, err := contract.Cancel(now)
	require.NoError(t, err)
	assert.True(t, cancelled.Status().Equal(valueobject.ContractStatusCancelled))

	_, err = cancelled.SignByFarmer("s3://signatures/farmer-1.png", now)
	assert.Error(t, err)

	once, err := contract.SignByFarmer("s3://signatures/farmer-1.png", now)
	require.NoError(t, err)
	signed, err := once.SignByBank("s3://signatures/bank.png", now)
	require.NoError(t, err)
	_, err = signed.Cancel(now)
	assert.Error(t, err, "a fully signed contract cannot be cancelled")
}

func TestFinancingContract_WithDocumentURL(t *testing.T) {
	now := time.Now().UTC()
	contract := newTestContract(t)

	withDoc := contract.WithDocumentURL("https://docs.example.com/contracts/x.pdf", now)
	assert.Equal(t, "https://docs.example.com/contracts/x.pdf", withDoc.DocumentURL())
	assert.Empty(t, contract.DocumentURL(), "the original copy stays untouched")
}
