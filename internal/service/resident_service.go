package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/repository"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
)

// CreateResidentInput carries a new resident record
type CreateResidentInput struct {
	FullName        string
	DOB             time.Time
	Gender          string
	IdentityCard    string
	Hometown        string
	Job             string
	Phone           *string
	ApartmentID     *uint
	ResidencyStatus models.ResidencyStatus
}

// UpdateResidentInput carries a partial resident update
type UpdateResidentInput struct {
	FullName        *string
	Gender          *string
	Hometown        *string
	Job             *string
	Phone           *string
	ApartmentID     *uint
	DetachApartment bool
	ResidencyStatus *models.ResidencyStatus
}

// ResidentService defines the interface for resident registry operations
type ResidentService interface {
	CreateResident(input CreateResidentInput) (*models.Resident, error)
	GetResident(id uint) (*models.Resident, error)
	ListResidents() ([]*models.Resident, error)
	UpdateResident(id uint, input UpdateResidentInput) (*models.Resident, error)
	DeleteResident(id uint) error
}

// residentService implements ResidentService
type residentService struct {
	residentRepo  repository.ResidentRepository
	apartmentRepo repository.ApartmentRepository
	logger        *logger.Logger
}

// NewResidentService creates a new instance of ResidentService
func NewResidentService(
	residentRepo repository.ResidentRepository,
	apartmentRepo repository.ApartmentRepository,
	logger *logger.Logger,
) ResidentService {
	return &residentService{
		residentRepo:  residentRepo,
		apartmentRepo: apartmentRepo,
		logger:        logger,
	}
}

// CreateResident persists a new resident, optionally attached to an
// apartment as a Member
func (s *residentService) CreateResident(input CreateResidentInput) (*models.Resident, error) {
	if input.ApartmentID != nil {
		if _, err := s.apartmentRepo.GetByID(*input.ApartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrApartmentNotFound
			}
			return nil, err
		}
	}

	status := input.ResidencyStatus
	if status == "" {
		status = models.ResidencyPermanent
	}

	resident := &models.Resident{
		FullName:        input.FullName,
		DOB:             input.DOB,
		Gender:          input.Gender,
		IdentityCard:    input.IdentityCard,
		Hometown:        input.Hometown,
		Job:             input.Job,
		Phone:           input.Phone,
		ApartmentID:     input.ApartmentID,
		RoleInApartment: models.ApartmentRoleMember,
		ResidencyStatus: status,
	}

	if err := s.residentRepo.Create(resident); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentityCard
		}
		return nil, err
	}

	return resident, nil
}

// GetResident retrieves a resident by ID
func (s *residentService) GetResident(id uint) (*models.Resident, error) {
	resident, err := s.residentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}
	return resident, nil
}

// ListResidents retrieves all residents
func (s *residentService) ListResidents() ([]*models.Resident, error) {
	return s.residentRepo.List()
}

// UpdateResident applies a partial update. Moving a resident between
// apartments keeps the membership relation consistent: a resident belongs
// to at most one apartment.
func (s *residentService) UpdateResident(id uint, input UpdateResidentInput) (*models.Resident, error) {
	resident, err := s.GetResident(id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		resident.FullName = *input.FullName
	}
	if input.Gender != nil {
		resident.Gender = *input.Gender
	}
	if input.Hometown != nil {
		resident.Hometown = *input.Hometown
	}
	if input.Job != nil {
		resident.Job = *input.Job
	}
	if input.Phone != nil {
		resident.Phone = input.Phone
	}
	if input.ResidencyStatus != nil {
		resident.ResidencyStatus = *input.ResidencyStatus
	}

	if input.DetachApartment {
		resident.ApartmentID = nil
		resident.RoleInApartment = models.ApartmentRoleMember
	} else if input.ApartmentID != nil {
		if _, err := s.apartmentRepo.GetByID(*input.ApartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrApartmentNotFound
			}
			return nil, err
		}
		resident.ApartmentID = input.ApartmentID
		resident.RoleInApartment = models.ApartmentRoleMember
	}

	if err := s.residentRepo.Update(resident); err != nil {
		return nil, err
	}

	return resident, nil
}

// DeleteResident removes a resident, clearing any ownership reference first
func (s *residentService) DeleteResident(id uint) error {
	resident, err := s.GetResident(id)
	if err != nil {
		return err
	}

	if resident.ApartmentID != nil && resident.RoleInApartment == models.ApartmentRoleOwner {
		apartment, err := s.apartmentRepo.GetByID(*resident.ApartmentID)
		if err == nil && apartment.OwnerID != nil && *apartment.OwnerID == id {
			apartment.OwnerID = nil
			apartment.Owner = nil
			apartment.Members = nil
			if err := s.apartmentRepo.Update(apartment); err != nil {
				return err
			}
		}
	}

	return s.residentRepo.Delete(id)
}
