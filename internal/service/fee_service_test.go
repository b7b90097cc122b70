package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
)

func TestCreateFee(t *testing.T) {
	env := newTestEnv(t)

	fee, err := env.fees.CreateFee(CreateFeeInput{
		Title:  "Service Fee 2025",
		Type:   models.FeeTypeService,
		Unit:   models.FeeUnitArea,
		Amount: 5000,
	})
	require.NoError(t, err)

	assert.NotZero(t, fee.ID)
	assert.True(t, fee.IsActive)
	assert.Equal(t, models.FeeTypeService, fee.Type)
}

func TestGetFeeNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.fees.GetFee(42)
	assert.ErrorIs(t, err, ErrFeeNotFound)
}

func TestListFees(t *testing.T) {
	env := newTestEnv(t)

	env.seedFee(t, "Service Fee 2025", models.FeeTypeService, models.FeeUnitArea, 5000)
	env.seedFee(t, "Electricity", models.FeeTypeUtility, models.FeeUnitKWh, 2500)
	disabled := env.seedFee(t, "Old Fee", models.FeeTypeService, models.FeeUnitApartment, 1000)
	inactive := false
	_, err := env.fees.UpdateFee(disabled.ID, UpdateFeeInput{IsActive: &inactive})
	require.NoError(t, err)

	all, err := env.fees.ListFees("", false, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := env.fees.ListFees("", true, 0)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	utilities, err := env.fees.ListFees(string(models.FeeTypeUtility), false, 0)
	require.NoError(t, err)
	require.Len(t, utilities, 1)
	assert.Equal(t, "Electricity", utilities[0].Title)

	limited, err := env.fees.ListFees("", false, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestUpdateFee(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Service Fee 2025", models.FeeTypeService, models.FeeUnitArea, 5000)

	newAmount := 6000.0
	newTitle := "Service Fee 2026"
	updated, err := env.fees.UpdateFee(fee.ID, UpdateFeeInput{
		Title:  &newTitle,
		Amount: &newAmount,
	})
	require.NoError(t, err)

	assert.Equal(t, "Service Fee 2026", updated.Title)
	assert.Equal(t, float64(6000), updated.Amount)
	assert.Equal(t, models.FeeUnitArea, updated.Unit)
}

func TestDeleteFeeWithoutTransactions(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Typo Fee", models.FeeTypeService, models.FeeUnitArea, 5000)

	deleted, err := env.fees.DeleteFee(fee.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = env.fees.GetFee(fee.ID)
	assert.ErrorIs(t, err, ErrFeeNotFound)
}

func TestDeleteFeeWithTransactionsSoftDisables(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Service Fee 2025", models.FeeTypeService, models.FeeUnitArea, 5000)
	apartment := env.seedApartment(t, "P102", 80, 1)

	_, err := env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: 400000,
		PayerName: "Nguyen Van A", Month: 3, Year: 2026,
	})
	require.NoError(t, err)

	deleted, err := env.fees.DeleteFee(fee.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// The fee survives for historical reporting but no longer bills
	kept, err := env.fees.GetFee(fee.ID)
	require.NoError(t, err)
	assert.False(t, kept.IsActive)

	transactions, err := env.transactions.GetApartmentTransactions(apartment.ID)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestGetFeePaymentStatus(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Service Fee 2025", models.FeeTypeService, models.FeeUnitArea, 5000)
	paid := env.seedApartment(t, "P102", 80, 1)
	unpaid := env.seedApartment(t, "P201", 60, 1)

	_, err := env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: paid.ID, FeeID: fee.ID, TotalAmount: 400000,
		PayerName: "Nguyen Van A", Month: 3, Year: 2026,
	})
	require.NoError(t, err)

	report, err := env.fees.GetFeePaymentStatus(fee.ID)
	require.NoError(t, err)

	assert.Equal(t, "Service Fee 2025", report.FeeInfo.Title)
	assert.Equal(t, float64(400000), report.FeeInfo.TotalCollected)
	require.Len(t, report.Apartments, 2)

	byName := make(map[string]string, len(report.Apartments))
	for _, line := range report.Apartments {
		byName[line.Name] = line.Status
	}
	assert.Equal(t, "PAID", byName[paid.Name])
	assert.Equal(t, "UNPAID", byName[unpaid.Name])
}
