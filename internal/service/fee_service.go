package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/models/response"
	"github.com/nqd2/bluemoon-admin-api/internal/repository"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
)

// CreateFeeInput carries a new fee definition
type CreateFeeInput struct {
	Title       string
	Description *string
	Type        models.FeeType
	Unit        models.FeeUnit
	Amount      float64
}

// UpdateFeeInput carries a partial fee correction; nil fields are untouched
type UpdateFeeInput struct {
	Title       *string
	Description *string
	Amount      *float64
	IsActive    *bool
}

// FeeService defines the interface for fee catalog operations
type FeeService interface {
	CreateFee(input CreateFeeInput) (*models.Fee, error)
	GetFee(id uint) (*models.Fee, error)
	ListFees(feeType string, activeOnly bool, limit int) ([]*models.Fee, error)
	UpdateFee(id uint, input UpdateFeeInput) (*models.Fee, error)
	DeleteFee(id uint) (deleted bool, err error)
	GetFeePaymentStatus(id uint) (*response.FeePaymentStatusResponse, error)
}

// feeService implements FeeService
type feeService struct {
	feeRepo         repository.FeeRepository
	apartmentRepo   repository.ApartmentRepository
	transactionRepo repository.TransactionRepository
	logger          *logger.Logger
}

// NewFeeService creates a new instance of FeeService
func NewFeeService(
	feeRepo repository.FeeRepository,
	apartmentRepo repository.ApartmentRepository,
	transactionRepo repository.TransactionRepository,
	logger *logger.Logger,
) FeeService {
	return &feeService{
		feeRepo:         feeRepo,
		apartmentRepo:   apartmentRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// CreateFee persists a new active fee definition
func (s *feeService) CreateFee(input CreateFeeInput) (*models.Fee, error) {
	fee := &models.Fee{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Unit:        input.Unit,
		Amount:      input.Amount,
		IsActive:    true,
	}

	if err := s.feeRepo.Create(fee); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"fee_id": fee.ID,
		"title":  fee.Title,
		"type":   fee.Type,
	}).Info("Fee created")

	return fee, nil
}

// GetFee retrieves a fee by ID
func (s *feeService) GetFee(id uint) (*models.Fee, error) {
	fee, err := s.feeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeNotFound
		}
		return nil, err
	}
	return fee, nil
}

// ListFees retrieves fees with optional type/active filters
func (s *feeService) ListFees(feeType string, activeOnly bool, limit int) ([]*models.Fee, error) {
	return s.feeRepo.List(feeType, activeOnly, limit)
}

// UpdateFee applies an administrative correction to a fee
func (s *feeService) UpdateFee(id uint, input UpdateFeeInput) (*models.Fee, error) {
	fee, err := s.GetFee(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		fee.Title = *input.Title
	}
	if input.Description != nil {
		fee.Description = input.Description
	}
	if input.Amount != nil {
		fee.Amount = *input.Amount
	}
	if input.IsActive != nil {
		fee.IsActive = *input.IsActive
	}

	if err := s.feeRepo.Update(fee); err != nil {
		return nil, err
	}

	return fee, nil
}

// DeleteFee removes a fee, or soft-disables it when transactions reference
// it so historical billing stays intact. Returns whether a hard delete
// happened.
func (s *feeService) DeleteFee(id uint) (bool, error) {
	fee, err := s.GetFee(id)
	if err != nil {
		return false, err
	}

	count, err := s.feeRepo.CountTransactions(id)
	if err != nil {
		return false, err
	}

	if count > 0 {
		fee.IsActive = false
		if err := s.feeRepo.Update(fee); err != nil {
			return false, err
		}
		s.logger.WithField("fee_id", id).Info("Fee referenced by transactions, soft-disabled instead of deleted")
		return false, nil
	}

	if err := s.feeRepo.Delete(id); err != nil {
		return false, err
	}
	return true, nil
}

// GetFeePaymentStatus reports PAID/UNPAID per apartment for one fee plus the
// total collected
func (s *feeService) GetFeePaymentStatus(id uint) (*response.FeePaymentStatusResponse, error) {
	fee, err := s.GetFee(id)
	if err != nil {
		return nil, err
	}

	apartments, err := s.apartmentRepo.List()
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.ListByFee(id)
	if err != nil {
		return nil, err
	}

	var totalCollected float64
	byApartment := make(map[uint]*models.Transaction, len(transactions))
	for _, t := range transactions {
		totalCollected += t.TotalAmount
		if _, ok := byApartment[t.ApartmentID]; !ok {
			byApartment[t.ApartmentID] = t
		}
	}

	resp := &response.FeePaymentStatusResponse{
		FeeInfo: response.FeeInfo{
			Title:          fee.Title,
			TotalCollected: totalCollected,
		},
		Apartments: make([]response.ApartmentPaymentStatus, 0, len(apartments)),
	}

	for _, apt := range apartments {
		ownerName := "N/A"
		if apt.Owner != nil {
			ownerName = apt.Owner.FullName
		}

		status := response.ApartmentPaymentStatus{
			ApartmentID: apt.ID,
			Name:        apt.Name,
			OwnerName:   ownerName,
			Status:      "UNPAID",
		}
		if t, ok := byApartment[apt.ID]; ok {
			paidDate := t.Date
			status.Status = "PAID"
			status.PaidAmount = t.TotalAmount
			status.PaidDate = &paidDate
		}

		resp.Apartments = append(resp.Apartments, status)
	}

	return resp, nil
}
