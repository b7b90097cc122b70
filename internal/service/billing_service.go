package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/repository"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
)

// UsageReadings holds externally supplied meter readings keyed by apartment
// ID then fee ID. Metered pairs without a reading are skipped rather than
// billed with simulated usage.
type UsageReadings map[uint]map[uint]float64

// Reading returns the meter reading for the pair, if one was supplied
func (u UsageReadings) Reading(apartmentID, feeID uint) *float64 {
	byFee, ok := u[apartmentID]
	if !ok {
		return nil
	}
	reading, ok := byFee[feeID]
	if !ok {
		return nil
	}
	return &reading
}

// BillError identifies one (apartment, fee) pair that failed during a batch
type BillError struct {
	Apartment string `json:"apartment"`
	Fee       string `json:"fee"`
	Error     string `json:"error"`
}

// GenerateBillsResult summarizes one billing batch run
type GenerateBillsResult struct {
	Created int         `json:"created"`
	Skipped int         `json:"skipped"`
	Errors  []BillError `json:"errors,omitempty"`
}

// BillingService defines the interface for the monthly billing batch
type BillingService interface {
	GenerateBills(month, year int, readings UsageReadings) (*GenerateBillsResult, error)
}

// billingService implements BillingService
type billingService struct {
	feeRepo         repository.FeeRepository
	apartmentRepo   repository.ApartmentRepository
	transactionRepo repository.TransactionRepository
	calculator      CalculationService
	logger          *logger.Logger
}

// NewBillingService creates a new instance of BillingService
func NewBillingService(
	feeRepo repository.FeeRepository,
	apartmentRepo repository.ApartmentRepository,
	transactionRepo repository.TransactionRepository,
	calculator CalculationService,
	logger *logger.Logger,
) BillingService {
	return &billingService{
		feeRepo:         feeRepo,
		apartmentRepo:   apartmentRepo,
		transactionRepo: transactionRepo,
		calculator:      calculator,
		logger:          logger,
	}
}

// GenerateBills creates Pending bills for every active fee of every apartment
// for the given period. The batch is idempotent: pairs already billed for the
// period are skipped, and a duplicate-key insert (racing batch or payment) is
// treated as already billed, never as a failure. Per-pair failures are
// collected and the batch continues; it is best effort, not atomic.
func (s *billingService) GenerateBills(month, year int, readings UsageReadings) (*GenerateBillsResult, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d, must be between 1-12", month)
	}

	fees, err := s.feeRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to load active fees: %w", err)
	}

	apartments, err := s.apartmentRepo.ListWithMembers()
	if err != nil {
		return nil, fmt.Errorf("failed to load apartments: %w", err)
	}

	result := &GenerateBillsResult{}
	now := time.Now()

	for _, apartment := range apartments {
		for _, fee := range fees {
			existing, err := s.transactionRepo.FindForPeriod(apartment.ID, fee.ID, month, year)
			if err != nil {
				result.Errors = append(result.Errors, BillError{
					Apartment: apartment.Name,
					Fee:       fee.Title,
					Error:     err.Error(),
				})
				continue
			}
			if existing != nil {
				result.Skipped++
				continue
			}

			calc := s.calculator.Calculate(fee, apartment, readings.Reading(apartment.ID, fee.ID))
			if !calc.Billable() {
				// Zero or negative totals are not billable; metered pairs
				// without a reading land here until readings are submitted.
				result.Skipped++
				continue
			}

			unitPrice := fee.Amount
			transaction := &models.Transaction{
				ReceiptNo:   uuid.New().String(),
				ApartmentID: apartment.ID,
				FeeID:       fee.ID,
				Month:       month,
				Year:        year,
				TotalAmount: calc.TotalAmount,
				Quantity:    calc.Quantity,
				Usage:       calc.Usage,
				UnitPrice:   &unitPrice,
				Status:      models.TransactionPending,
				Date:        now,
			}

			if err := s.transactionRepo.Create(transaction); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Lost the race against a concurrent insert; the bill
					// exists, which is all the batch guarantees.
					result.Skipped++
					continue
				}
				result.Errors = append(result.Errors, BillError{
					Apartment: apartment.Name,
					Fee:       fee.Title,
					Error:     err.Error(),
				})
				continue
			}

			result.Created++
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"month":   month,
		"year":    year,
		"created": result.Created,
		"skipped": result.Skipped,
		"errors":  len(result.Errors),
	}).Info("Billing batch completed")

	return result, nil
}
