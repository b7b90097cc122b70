package repository

import (
	"github.com/nqd2/bluemoon-admin-api/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository defines the interface for ledger data operations
type TransactionRepository interface {
	Create(transaction *models.Transaction) error
	GetByID(id uint) (*models.Transaction, error)
	FindForPeriod(apartmentID, feeID uint, month, year int) (*models.Transaction, error)
	FindByApartmentAndFee(apartmentID, feeID uint) (*models.Transaction, error)
	ListByApartment(apartmentID uint) ([]*models.Transaction, error)
	ListByFee(feeID uint) ([]*models.Transaction, error)
	ListForExport(month, year *int, status string) ([]*models.Transaction, error)
	Update(transaction *models.Transaction) error
	Delete(id uint) error
}

// transactionRepository implements TransactionRepository
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new instance of TransactionRepository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create persists a new transaction. A unique violation of the
// (apartment, fee, month, year) index surfaces as gorm.ErrDuplicatedKey.
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	return r.db.Create(transaction).Error
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var transaction models.Transaction

	err := r.db.Where("id = ?", id).First(&transaction).Error
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

// FindForPeriod looks up the bill for an exact (apartment, fee, month, year)
// tuple. Returns (nil, nil) when no bill exists for the period.
func (r *transactionRepository) FindForPeriod(apartmentID, feeID uint, month, year int) (*models.Transaction, error) {
	var transaction models.Transaction

	err := r.db.Where("apartment_id = ? AND fee_id = ? AND month = ? AND year = ?",
		apartmentID, feeID, month, year).First(&transaction).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

// FindByApartmentAndFee looks up any transaction for the pair regardless of
// period. Returns (nil, nil) when none exists.
func (r *transactionRepository) FindByApartmentAndFee(apartmentID, feeID uint) (*models.Transaction, error) {
	var transaction models.Transaction

	err := r.db.Where("apartment_id = ? AND fee_id = ?", apartmentID, feeID).First(&transaction).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

// ListByApartment retrieves an apartment's transactions newest first with
// fee and apartment resolved
func (r *transactionRepository) ListByApartment(apartmentID uint) ([]*models.Transaction, error) {
	var transactions []*models.Transaction

	err := r.db.Preload("Fee").Preload("Apartment").
		Where("apartment_id = ?", apartmentID).
		Order("date DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// ListByFee retrieves all transactions referencing a fee
func (r *transactionRepository) ListByFee(feeID uint) ([]*models.Transaction, error) {
	var transactions []*models.Transaction

	err := r.db.Where("fee_id = ?", feeID).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// ListForExport retrieves transactions with optional period/status filters,
// fee and apartment resolved, for the excel export
func (r *transactionRepository) ListForExport(month, year *int, status string) ([]*models.Transaction, error) {
	var transactions []*models.Transaction

	query := r.db.Preload("Fee").Preload("Apartment").Order("year DESC, month DESC, date DESC")
	if month != nil {
		query = query.Where("month = ?", *month)
	}
	if year != nil {
		query = query.Where("year = ?", *year)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// Update saves all fields of the transaction
func (r *transactionRepository) Update(transaction *models.Transaction) error {
	return r.db.Save(transaction).Error
}

// Delete removes a transaction by ID
func (r *transactionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Transaction{}, id).Error
}
