package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestCalculate(t *testing.T) {
	calculator := NewCalculationService()

	apartment := &models.Apartment{
		Name: "P102",
		Area: 80,
		Members: []models.Resident{
			{FullName: "A"}, {FullName: "B"}, {FullName: "C"},
		},
	}

	tests := []struct {
		name        string
		fee         *models.Fee
		usage       *float64
		quantity    float64
		totalAmount float64
		wantUsage   *float64
	}{
		{
			name:        "area fee multiplies by apartment area",
			fee:         &models.Fee{Unit: models.FeeUnitArea, Amount: 5000},
			quantity:    80,
			totalAmount: 400000,
		},
		{
			name:        "person fee multiplies by member count",
			fee:         &models.Fee{Unit: models.FeeUnitPerson, Amount: 30000},
			quantity:    3,
			totalAmount: 90000,
		},
		{
			name:        "apartment fee is flat",
			fee:         &models.Fee{Unit: models.FeeUnitApartment, Amount: 150000},
			quantity:    1,
			totalAmount: 150000,
		},
		{
			name:        "kwh fee multiplies by reading",
			fee:         &models.Fee{Unit: models.FeeUnitKWh, Amount: 2500},
			usage:       floatPtr(120.5),
			quantity:    120.5,
			totalAmount: 301250,
			wantUsage:   floatPtr(120.5),
		},
		{
			name:        "water fee multiplies by reading",
			fee:         &models.Fee{Unit: models.FeeUnitWaterCube, Amount: 12000},
			usage:       floatPtr(8),
			quantity:    8,
			totalAmount: 96000,
			wantUsage:   floatPtr(8),
		},
		{
			name:        "metered fee without reading bills zero",
			fee:         &models.Fee{Unit: models.FeeUnitKWh, Amount: 2500},
			quantity:    0,
			totalAmount: 0,
			wantUsage:   floatPtr(0),
		},
		{
			name:        "negative reading counts as zero",
			fee:         &models.Fee{Unit: models.FeeUnitKWh, Amount: 2500},
			usage:       floatPtr(-5),
			quantity:    0,
			totalAmount: 0,
			wantUsage:   floatPtr(0),
		},
		{
			name:        "total is rounded to whole currency units",
			fee:         &models.Fee{Unit: models.FeeUnitArea, Amount: 1000.33},
			quantity:    80,
			totalAmount: 80026,
		},
		{
			name:        "unknown unit falls back to flat charge",
			fee:         &models.Fee{Unit: models.FeeUnit("Bogus"), Amount: 50000},
			quantity:    1,
			totalAmount: 50000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calculator.Calculate(tt.fee, apartment, tt.usage)

			assert.Equal(t, tt.quantity, result.Quantity)
			assert.Equal(t, tt.totalAmount, result.TotalAmount)
			if tt.wantUsage != nil {
				if assert.NotNil(t, result.Usage) {
					assert.Equal(t, *tt.wantUsage, *result.Usage)
				}
			} else {
				assert.Nil(t, result.Usage)
			}
		})
	}
}

func TestCalculatePersonFeeEmptyApartment(t *testing.T) {
	calculator := NewCalculationService()

	fee := &models.Fee{Unit: models.FeeUnitPerson, Amount: 30000}
	apartment := &models.Apartment{Name: "Vacant", Area: 60}

	result := calculator.Calculate(fee, apartment, nil)

	assert.Equal(t, float64(0), result.Quantity)
	assert.Equal(t, float64(0), result.TotalAmount)
	assert.False(t, result.Billable())
}

func TestCalculateDoesNotMutateInputs(t *testing.T) {
	calculator := NewCalculationService()

	fee := &models.Fee{Unit: models.FeeUnitArea, Amount: 5000}
	apartment := &models.Apartment{Name: "P102", Area: 80}

	calculator.Calculate(fee, apartment, nil)

	assert.Equal(t, float64(5000), fee.Amount)
	assert.Equal(t, float64(80), apartment.Area)
}

func TestCalculateAll(t *testing.T) {
	calculator := NewCalculationService()

	apartment := &models.Apartment{
		ID:   1,
		Name: "P102",
		Area: 80,
		Members: []models.Resident{
			{FullName: "A"}, {FullName: "B"},
		},
	}
	fees := []*models.Fee{
		{ID: 1, Title: "Service", Type: models.FeeTypeService, Unit: models.FeeUnitArea, Amount: 5000},
		{ID: 2, Title: "Cleaning", Type: models.FeeTypeService, Unit: models.FeeUnitPerson, Amount: 30000},
		{ID: 3, Title: "Electricity", Type: models.FeeTypeUtility, Unit: models.FeeUnitKWh, Amount: 2500},
	}

	resp := calculator.CalculateAll(apartment, fees, map[uint]float64{3: 100})

	assert.Equal(t, "P102", resp.ApartmentName)
	assert.Equal(t, 2, resp.MemberCount)
	assert.Equal(t, 3, resp.FeeCount)
	assert.Len(t, resp.Fees, 3)

	// 80*5000 + 2*30000 + 100*2500
	assert.Equal(t, float64(400000+60000+250000), resp.GrandTotal)

	electricity := resp.Fees[2]
	assert.Equal(t, "Electricity", electricity.FeeTitle)
	if assert.NotNil(t, electricity.Usage) {
		assert.Equal(t, float64(100), *electricity.Usage)
	}
}
