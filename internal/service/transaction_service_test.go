package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
)

func TestRecordPaymentValidation(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Service Fee 2025", models.FeeTypeService, models.FeeUnitArea, 5000)
	apartment := env.seedApartment(t, "P102", 80, 1)

	tests := []struct {
		name    string
		input   RecordPaymentInput
		wantErr error
	}{
		{
			name:    "zero amount rejected",
			input:   RecordPaymentInput{ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: 0, PayerName: "Nguyen Van A"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount rejected",
			input:   RecordPaymentInput{ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: -100, PayerName: "Nguyen Van A"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "missing payer rejected",
			input:   RecordPaymentInput{ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: 400000},
			wantErr: ErrPayerRequired,
		},
		{
			name:    "unknown fee rejected",
			input:   RecordPaymentInput{ApartmentID: apartment.ID, FeeID: 999, TotalAmount: 400000, PayerName: "Nguyen Van A"},
			wantErr: ErrFeeNotFound,
		},
		{
			name:    "unknown apartment rejected",
			input:   RecordPaymentInput{ApartmentID: 999, FeeID: fee.ID, TotalAmount: 400000, PayerName: "Nguyen Van A"},
			wantErr: ErrApartmentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.transactions.RecordPayment(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecordPayment(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Service Fee 2025", models.FeeTypeService, models.FeeUnitArea, 5000)
	apartment := env.seedApartment(t, "P102", 80, 1)

	transaction, err := env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: apartment.ID,
		FeeID:       fee.ID,
		TotalAmount: 400000,
		PayerName:   "Nguyen Van A",
		Month:       3,
		Year:        2026,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TransactionCompleted, transaction.Status)
	assert.NotEmpty(t, transaction.ReceiptNo)
	assert.Equal(t, 3, transaction.Month)
	assert.Equal(t, 2026, transaction.Year)
	if assert.NotNil(t, transaction.PayerName) {
		assert.Equal(t, "Nguyen Van A", *transaction.PayerName)
	}
}

func TestRecordPaymentServiceFeePaidOnce(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Service Fee 2025", models.FeeTypeService, models.FeeUnitArea, 5000)
	apartment := env.seedApartment(t, "P102", 80, 1)

	_, err := env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: 400000,
		PayerName: "Nguyen Van A", Month: 3, Year: 2026,
	})
	require.NoError(t, err)

	// A second payment is rejected even for a different period
	_, err = env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: 400000,
		PayerName: "Nguyen Van A", Month: 4, Year: 2026,
	})
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	// Another apartment is unaffected
	other := env.seedApartment(t, "P201", 60, 1)
	_, err = env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: other.ID, FeeID: fee.ID, TotalAmount: 300000,
		PayerName: "Tran Thi B", Month: 3, Year: 2026,
	})
	assert.NoError(t, err)
}

func TestRecordPaymentContributionRepeatable(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Flood Relief", models.FeeTypeContribution, models.FeeUnitApartment, 0)
	apartment := env.seedApartment(t, "P102", 80, 1)

	_, err := env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: 100000,
		PayerName: "Nguyen Van A", Month: 3, Year: 2026,
	})
	require.NoError(t, err)

	// Contributions may be paid again in a later period
	_, err = env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: 50000,
		PayerName: "Nguyen Van A", Month: 4, Year: 2026,
	})
	require.NoError(t, err)

	// But never twice within the same period
	_, err = env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: 50000,
		PayerName: "Nguyen Van A", Month: 4, Year: 2026,
	})
	assert.ErrorIs(t, err, ErrDuplicateBill)
}

func TestRecordPaymentConflictsWithGeneratedBill(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Electricity", models.FeeTypeUtility, models.FeeUnitKWh, 2500)
	apartment := env.seedApartment(t, "P102", 80, 1)

	result, err := env.billing.GenerateBills(3, 2026, UsageReadings{
		apartment.ID: {fee.ID: 120},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	_, err = env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: 300000,
		PayerName: "Nguyen Van A", Month: 3, Year: 2026,
	})
	assert.ErrorIs(t, err, ErrDuplicateBill)
}

func TestUpdateTransactionMarksBillPaid(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Service Fee 2025", models.FeeTypeService, models.FeeUnitArea, 5000)
	apartment := env.seedApartment(t, "P102", 80, 1)

	result, err := env.billing.GenerateBills(3, 2026, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	var bill models.Transaction
	require.NoError(t, env.db.Where("apartment_id = ? AND fee_id = ?", apartment.ID, fee.ID).First(&bill).Error)
	require.Equal(t, models.TransactionPending, bill.Status)

	completed := models.TransactionCompleted

	// Completing without a payer is rejected
	_, err = env.transactions.UpdateTransaction(bill.ID, UpdateTransactionInput{Status: &completed})
	assert.ErrorIs(t, err, ErrPayerRequired)

	payer := "Nguyen Van A"
	updated, err := env.transactions.UpdateTransaction(bill.ID, UpdateTransactionInput{
		Status:    &completed,
		PayerName: &payer,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionCompleted, updated.Status)
	if assert.NotNil(t, updated.PayerName) {
		assert.Equal(t, "Nguyen Van A", *updated.PayerName)
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	env := newTestEnv(t)

	amount := 100.0
	_, err := env.transactions.UpdateTransaction(42, UpdateTransactionInput{TotalAmount: &amount})
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Service Fee 2025", models.FeeTypeService, models.FeeUnitArea, 5000)
	apartment := env.seedApartment(t, "P102", 80, 1)

	transaction, err := env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: 400000,
		PayerName: "Nguyen Van A", Month: 3, Year: 2026,
	})
	require.NoError(t, err)

	require.NoError(t, env.transactions.DeleteTransaction(transaction.ID))
	assert.ErrorIs(t, env.transactions.DeleteTransaction(transaction.ID), ErrTransactionNotFound)
}

func TestGetApartmentTransactions(t *testing.T) {
	env := newTestEnv(t)

	serviceFee := env.seedFee(t, "Service Fee 2025", models.FeeTypeService, models.FeeUnitArea, 5000)
	contribution := env.seedFee(t, "Flood Relief", models.FeeTypeContribution, models.FeeUnitApartment, 0)
	apartment := env.seedApartment(t, "P102", 80, 1)
	other := env.seedApartment(t, "P201", 60, 1)

	for _, input := range []RecordPaymentInput{
		{ApartmentID: apartment.ID, FeeID: serviceFee.ID, TotalAmount: 400000, PayerName: "Nguyen Van A", Month: 3, Year: 2026},
		{ApartmentID: apartment.ID, FeeID: contribution.ID, TotalAmount: 100000, PayerName: "Nguyen Van A", Month: 3, Year: 2026},
		{ApartmentID: other.ID, FeeID: serviceFee.ID, TotalAmount: 300000, PayerName: "Tran Thi B", Month: 3, Year: 2026},
	} {
		_, err := env.transactions.RecordPayment(input)
		require.NoError(t, err)
	}

	transactions, err := env.transactions.GetApartmentTransactions(apartment.ID)
	require.NoError(t, err)
	assert.Len(t, transactions, 2)
	for _, tx := range transactions {
		assert.Equal(t, apartment.ID, tx.ApartmentID)
	}
}

func TestGetApartmentsRevenueSummary(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Service Fee 2025", models.FeeTypeService, models.FeeUnitArea, 5000)
	contribution := env.seedFee(t, "Flood Relief", models.FeeTypeContribution, models.FeeUnitApartment, 0)
	apartment := env.seedApartment(t, "P102", 80, 1)

	_, err := env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: 400000,
		PayerName: "Nguyen Van A", Month: 3, Year: 2026,
	})
	require.NoError(t, err)
	_, err = env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: apartment.ID, FeeID: contribution.ID, TotalAmount: 100000,
		PayerName: "Nguyen Van A", Month: 3, Year: 2026,
	})
	require.NoError(t, err)

	// A Pending bill must not count toward collected revenue
	env.seedFee(t, "Cleaning", models.FeeTypeService, models.FeeUnitPerson, 30000)
	result, err := env.billing.GenerateBills(4, 2026, nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, result.Created, 1)

	summaries, err := env.transactions.GetApartmentsRevenueSummary()
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	summary := summaries[0]
	assert.Equal(t, "P102", summary.Name)
	assert.Equal(t, float64(500000), summary.TotalCollected)
	assert.Equal(t, int64(2), summary.TransactionCount)
}

func TestExportTransactionsToExcel(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Service Fee 2025", models.FeeTypeService, models.FeeUnitArea, 5000)
	apartment := env.seedApartment(t, "P102", 80, 1)

	_, err := env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: 400000,
		PayerName: "Nguyen Van A", Month: 3, Year: 2026,
	})
	require.NoError(t, err)

	content, filename, err := env.transactions.ExportTransactionsToExcel(nil, nil, "")
	require.NoError(t, err)
	assert.NotEmpty(t, content)
	assert.Contains(t, filename, "transactions_export_")
	assert.Contains(t, filename, ".xlsx")
}
