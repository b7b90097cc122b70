package repository

import (
	"github.com/nqd2/bluemoon-admin-api/internal/models"

	"gorm.io/gorm"
)

// ResidentRepository defines the interface for resident registry data operations
type ResidentRepository interface {
	Create(resident *models.Resident) error
	GetByID(id uint) (*models.Resident, error)
	GetByIdentityCard(identityCard string) (*models.Resident, error)
	List() ([]*models.Resident, error)
	ListByApartment(apartmentID uint) ([]*models.Resident, error)
	Update(resident *models.Resident) error
	Delete(id uint) error
}

// residentRepository implements ResidentRepository
type residentRepository struct {
	db *gorm.DB
}

// NewResidentRepository creates a new instance of ResidentRepository
func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{
		db: db,
	}
}

// Create persists a new resident
func (r *residentRepository) Create(resident *models.Resident) error {
	return r.db.Create(resident).Error
}

// GetByID retrieves a resident by ID
func (r *residentRepository) GetByID(id uint) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Where("id = ?", id).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// GetByIdentityCard retrieves a resident by identity card number
func (r *residentRepository) GetByIdentityCard(identityCard string) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Where("identity_card = ?", identityCard).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// List retrieves all residents
func (r *residentRepository) List() ([]*models.Resident, error) {
	var residents []*models.Resident

	err := r.db.Order("full_name").Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

// ListByApartment retrieves all members of an apartment
func (r *residentRepository) ListByApartment(apartmentID uint) ([]*models.Resident, error) {
	var residents []*models.Resident

	err := r.db.Where("apartment_id = ?", apartmentID).Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

// Update saves all fields of the resident
func (r *residentRepository) Update(resident *models.Resident) error {
	return r.db.Save(resident).Error
}

// Delete removes a resident by ID
func (r *residentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Resident{}, id).Error
}
