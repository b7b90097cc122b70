package service

import (
	"math"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/models/response"
)

// CalculationResult is the outcome of applying a fee to an apartment
type CalculationResult struct {
	Quantity    float64
	TotalAmount float64
	Usage       *float64
}

// Billable reports whether the result should be persisted as a bill
func (r CalculationResult) Billable() bool {
	return r.TotalAmount > 0
}

// CalculationService is the pure fee calculation engine. It performs no I/O,
// never mutates its inputs and is safe for concurrent use.
type CalculationService interface {
	Calculate(fee *models.Fee, apartment *models.Apartment, usage *float64) CalculationResult
	CalculateAll(apartment *models.Apartment, fees []*models.Fee, usageByFee map[uint]float64) *response.ApartmentCalculationResponse
}

// calculationService implements CalculationService
type calculationService struct{}

// NewCalculationService creates a new instance of CalculationService
func NewCalculationService() CalculationService {
	return &calculationService{}
}

// Calculate computes quantity and total amount for one (fee, apartment) pair.
// Metered units take their quantity from the supplied reading; a missing
// reading counts as zero usage. Totals are rounded to the nearest whole
// currency unit. An unrecognized unit falls back to a flat charge so a data
// error never blocks billing; callers should flag such fees for review.
func (s *calculationService) Calculate(fee *models.Fee, apartment *models.Apartment, usage *float64) CalculationResult {
	var result CalculationResult

	switch fee.Unit {
	case models.FeeUnitArea:
		result.Quantity = apartment.Area
		result.TotalAmount = fee.Amount * apartment.Area
	case models.FeeUnitPerson:
		result.Quantity = float64(apartment.MemberCount())
		result.TotalAmount = fee.Amount * result.Quantity
	case models.FeeUnitApartment:
		result.Quantity = 1
		result.TotalAmount = fee.Amount
	case models.FeeUnitKWh, models.FeeUnitWaterCube:
		reading := 0.0
		if usage != nil && *usage > 0 {
			reading = *usage
		}
		result.Quantity = reading
		result.TotalAmount = fee.Amount * reading
		result.Usage = &reading
	default:
		result.Quantity = 1
		result.TotalAmount = fee.Amount
	}

	result.TotalAmount = math.Round(result.TotalAmount)
	return result
}

// CalculateAll applies every fee to one apartment and totals the results
func (s *calculationService) CalculateAll(apartment *models.Apartment, fees []*models.Fee, usageByFee map[uint]float64) *response.ApartmentCalculationResponse {
	resp := &response.ApartmentCalculationResponse{
		ApartmentID:   apartment.ID,
		ApartmentName: apartment.Name,
		ApartmentArea: apartment.Area,
		MemberCount:   apartment.MemberCount(),
		Fees:          make([]response.FeeCalculationLine, 0, len(fees)),
	}

	var grandTotal float64
	for _, fee := range fees {
		var usage *float64
		if reading, ok := usageByFee[fee.ID]; ok {
			usage = &reading
		}

		result := s.Calculate(fee, apartment, usage)
		resp.Fees = append(resp.Fees, response.FeeCalculationLine{
			FeeID:       fee.ID,
			FeeTitle:    fee.Title,
			FeeType:     string(fee.Type),
			Unit:        string(fee.Unit),
			UnitPrice:   fee.Amount,
			Quantity:    result.Quantity,
			TotalAmount: result.TotalAmount,
			Usage:       result.Usage,
		})
		grandTotal += result.TotalAmount
	}

	resp.GrandTotal = math.Round(grandTotal)
	resp.FeeCount = len(resp.Fees)
	return resp
}
