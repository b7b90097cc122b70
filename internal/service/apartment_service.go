package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/repository"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
)

// CreateApartmentInput carries a new household record
type CreateApartmentInput struct {
	Name            string
	Area            float64
	OwnerID         *uint
	ApartmentNumber *string
	Building        *string
}

// UpdateApartmentInput carries a partial apartment update
type UpdateApartmentInput struct {
	Name            *string
	Area            *float64
	OwnerID         *uint
	ApartmentNumber *string
	Building        *string
}

// ApartmentService defines the interface for household registry operations
type ApartmentService interface {
	CreateApartment(input CreateApartmentInput) (*models.Apartment, error)
	GetApartment(id uint) (*models.Apartment, error)
	ListApartments() ([]*models.Apartment, error)
	UpdateApartment(id uint, input UpdateApartmentInput) (*models.Apartment, error)
	DeleteApartment(id uint) error
}

// apartmentService implements ApartmentService
type apartmentService struct {
	apartmentRepo repository.ApartmentRepository
	residentRepo  repository.ResidentRepository
	logger        *logger.Logger
}

// NewApartmentService creates a new instance of ApartmentService
func NewApartmentService(
	apartmentRepo repository.ApartmentRepository,
	residentRepo repository.ResidentRepository,
	logger *logger.Logger,
) ApartmentService {
	return &apartmentService{
		apartmentRepo: apartmentRepo,
		residentRepo:  residentRepo,
		logger:        logger,
	}
}

// CreateApartment persists a new household. When an owner is given, the
// resident is attached as the apartment's first member and marked Owner.
func (s *apartmentService) CreateApartment(input CreateApartmentInput) (*models.Apartment, error) {
	var owner *models.Resident
	if input.OwnerID != nil {
		var err error
		owner, err = s.residentRepo.GetByID(*input.OwnerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrResidentNotFound
			}
			return nil, err
		}
	}

	apartment := &models.Apartment{
		Name:            input.Name,
		Area:            input.Area,
		OwnerID:         input.OwnerID,
		ApartmentNumber: input.ApartmentNumber,
		Building:        input.Building,
	}

	if err := s.apartmentRepo.Create(apartment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateApartmentName
		}
		return nil, err
	}

	if owner != nil {
		owner.ApartmentID = &apartment.ID
		owner.RoleInApartment = models.ApartmentRoleOwner
		if err := s.residentRepo.Update(owner); err != nil {
			return nil, err
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"apartment_id": apartment.ID,
		"name":         apartment.Name,
	}).Info("Apartment created")

	return s.apartmentRepo.GetByID(apartment.ID)
}

// GetApartment retrieves an apartment with owner and members resolved
func (s *apartmentService) GetApartment(id uint) (*models.Apartment, error) {
	apartment, err := s.apartmentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}
	return apartment, nil
}

// ListApartments retrieves all apartments with owners resolved
func (s *apartmentService) ListApartments() ([]*models.Apartment, error) {
	return s.apartmentRepo.List()
}

// UpdateApartment applies a partial update, keeping the owner's registry
// record in sync when ownership changes
func (s *apartmentService) UpdateApartment(id uint, input UpdateApartmentInput) (*models.Apartment, error) {
	apartment, err := s.GetApartment(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		apartment.Name = *input.Name
	}
	if input.Area != nil {
		apartment.Area = *input.Area
	}
	if input.ApartmentNumber != nil {
		apartment.ApartmentNumber = input.ApartmentNumber
	}
	if input.Building != nil {
		apartment.Building = input.Building
	}

	if input.OwnerID != nil && (apartment.OwnerID == nil || *apartment.OwnerID != *input.OwnerID) {
		newOwner, err := s.residentRepo.GetByID(*input.OwnerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrResidentNotFound
			}
			return nil, err
		}

		// Demote the previous owner; an apartment has at most one.
		if apartment.OwnerID != nil {
			if previous, err := s.residentRepo.GetByID(*apartment.OwnerID); err == nil {
				previous.RoleInApartment = models.ApartmentRoleMember
				if err := s.residentRepo.Update(previous); err != nil {
					return nil, err
				}
			}
		}

		newOwner.ApartmentID = &apartment.ID
		newOwner.RoleInApartment = models.ApartmentRoleOwner
		if err := s.residentRepo.Update(newOwner); err != nil {
			return nil, err
		}
		apartment.OwnerID = input.OwnerID
	}

	// Save without the association fields to avoid touching residents
	apartment.Owner = nil
	apartment.Members = nil
	if err := s.apartmentRepo.Update(apartment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateApartmentName
		}
		return nil, err
	}

	return s.apartmentRepo.GetByID(id)
}

// DeleteApartment removes an apartment and detaches its members
func (s *apartmentService) DeleteApartment(id uint) error {
	apartment, err := s.GetApartment(id)
	if err != nil {
		return err
	}

	for i := range apartment.Members {
		member := apartment.Members[i]
		member.ApartmentID = nil
		member.RoleInApartment = models.ApartmentRoleMember
		if err := s.residentRepo.Update(&member); err != nil {
			return err
		}
	}

	return s.apartmentRepo.Delete(id)
}
