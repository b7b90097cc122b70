package repository

import (
	"github.com/nqd2/bluemoon-admin-api/internal/models"

	"gorm.io/gorm"
)

// FeeRepository defines the interface for fee catalog data operations
type FeeRepository interface {
	Create(fee *models.Fee) error
	GetByID(id uint) (*models.Fee, error)
	List(feeType string, activeOnly bool, limit int) ([]*models.Fee, error)
	ListActive() ([]*models.Fee, error)
	Update(fee *models.Fee) error
	Delete(id uint) error
	CountTransactions(feeID uint) (int64, error)
}

// feeRepository implements FeeRepository
type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository creates a new instance of FeeRepository
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{
		db: db,
	}
}

// Create persists a new fee
func (r *feeRepository) Create(fee *models.Fee) error {
	return r.db.Create(fee).Error
}

// GetByID retrieves a fee by ID
func (r *feeRepository) GetByID(id uint) (*models.Fee, error) {
	var fee models.Fee

	err := r.db.Where("id = ?", id).First(&fee).Error
	if err != nil {
		return nil, err
	}

	return &fee, nil
}

// List retrieves fees newest first with optional type/active filters
func (r *feeRepository) List(feeType string, activeOnly bool, limit int) ([]*models.Fee, error) {
	var fees []*models.Fee

	if limit <= 0 {
		limit = 20
	}

	query := r.db.Order("created_at DESC").Limit(limit)
	if feeType != "" {
		query = query.Where("type = ?", feeType)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	err := query.Find(&fees).Error
	if err != nil {
		return nil, err
	}

	return fees, nil
}

// ListActive retrieves all active fees
func (r *feeRepository) ListActive() ([]*models.Fee, error) {
	var fees []*models.Fee

	err := r.db.Where("is_active = ?", true).Find(&fees).Error
	if err != nil {
		return nil, err
	}

	return fees, nil
}

// Update saves all fields of the fee
func (r *feeRepository) Update(fee *models.Fee) error {
	return r.db.Save(fee).Error
}

// Delete removes a fee by ID
func (r *feeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Fee{}, id).Error
}

// CountTransactions counts ledger records that reference the fee
func (r *feeRepository) CountTransactions(feeID uint) (int64, error) {
	var count int64

	err := r.db.Model(&models.Transaction{}).Where("fee_id = ?", feeID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
