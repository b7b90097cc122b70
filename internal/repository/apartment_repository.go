package repository

import (
	"github.com/nqd2/bluemoon-admin-api/internal/models"

	"gorm.io/gorm"
)

// ApartmentRepository defines the interface for apartment registry data operations
type ApartmentRepository interface {
	Create(apartment *models.Apartment) error
	GetByID(id uint) (*models.Apartment, error)
	GetByName(name string) (*models.Apartment, error)
	List() ([]*models.Apartment, error)
	ListWithMembers() ([]*models.Apartment, error)
	Update(apartment *models.Apartment) error
	Delete(id uint) error
}

// apartmentRepository implements ApartmentRepository
type apartmentRepository struct {
	db *gorm.DB
}

// NewApartmentRepository creates a new instance of ApartmentRepository
func NewApartmentRepository(db *gorm.DB) ApartmentRepository {
	return &apartmentRepository{
		db: db,
	}
}

// Create persists a new apartment
func (r *apartmentRepository) Create(apartment *models.Apartment) error {
	return r.db.Create(apartment).Error
}

// GetByID retrieves an apartment with its owner and members resolved
func (r *apartmentRepository) GetByID(id uint) (*models.Apartment, error) {
	var apartment models.Apartment

	err := r.db.Preload("Owner").Preload("Members").Where("id = ?", id).First(&apartment).Error
	if err != nil {
		return nil, err
	}

	return &apartment, nil
}

// GetByName retrieves an apartment by its unique name
func (r *apartmentRepository) GetByName(name string) (*models.Apartment, error) {
	var apartment models.Apartment

	err := r.db.Where("name = ?", name).First(&apartment).Error
	if err != nil {
		return nil, err
	}

	return &apartment, nil
}

// List retrieves all apartments with owners resolved
func (r *apartmentRepository) List() ([]*models.Apartment, error) {
	var apartments []*models.Apartment

	err := r.db.Preload("Owner").Order("name").Find(&apartments).Error
	if err != nil {
		return nil, err
	}

	return apartments, nil
}

// ListWithMembers retrieves all apartments with member lists resolved,
// as needed by per-person fee calculation
func (r *apartmentRepository) ListWithMembers() ([]*models.Apartment, error) {
	var apartments []*models.Apartment

	err := r.db.Preload("Members").Order("name").Find(&apartments).Error
	if err != nil {
		return nil, err
	}

	return apartments, nil
}

// Update saves all fields of the apartment
func (r *apartmentRepository) Update(apartment *models.Apartment) error {
	return r.db.Save(apartment).Error
}

// Delete removes an apartment by ID
func (r *apartmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Apartment{}, id).Error
}
