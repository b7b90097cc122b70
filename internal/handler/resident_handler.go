package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/service"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
	"github.com/nqd2/bluemoon-admin-api/pkg/utils"
)

// CreateResidentRequest represents the resident-creation payload
type CreateResidentRequest struct {
	FullName        string  `json:"fullName" binding:"required"`
	DOB             string  `json:"dob" binding:"required"`
	Gender          string  `json:"gender" binding:"required"`
	IdentityCard    string  `json:"identityCard" binding:"required"`
	Hometown        string  `json:"hometown" binding:"required"`
	Job             string  `json:"job" binding:"required"`
	Phone           *string `json:"phone,omitempty"`
	ApartmentID     *uint   `json:"apartmentId,omitempty"`
	ResidencyStatus string  `json:"residencyStatus,omitempty" binding:"omitempty,oneof=Permanent Temporary Absent MovedOut"`
}

// UpdateResidentRequest represents a partial resident update
type UpdateResidentRequest struct {
	FullName        *string `json:"fullName,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	Hometown        *string `json:"hometown,omitempty"`
	Job             *string `json:"job,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	ApartmentID     *uint   `json:"apartmentId,omitempty"`
	DetachApartment bool    `json:"detachApartment,omitempty"`
	ResidencyStatus *string `json:"residencyStatus,omitempty" binding:"omitempty,oneof=Permanent Temporary Absent MovedOut"`
}

// ResidentHandler handles resident registry HTTP requests
type ResidentHandler struct {
	residentService service.ResidentService
	logger          *logger.Logger
}

// NewResidentHandler creates a new ResidentHandler instance
func NewResidentHandler(residentService service.ResidentService, logger *logger.Logger) *ResidentHandler {
	return &ResidentHandler{
		residentService: residentService,
		logger:          logger,
	}
}

// CreateResident creates a resident record
// @Summary Create resident
// @Tags residents
// @Accept json
// @Produce json
// @Param request body CreateResidentRequest true "Resident"
// @Success 201 {object} utils.APIResponse{data=models.Resident}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/residents [post]
func (h *ResidentHandler) CreateResident(c *gin.Context) {
	var req CreateResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err)
		return
	}

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		utils.ValidationErrorResponse(c, []utils.FieldError{
			{Field: "dob", Message: "must be a date in YYYY-MM-DD format"},
		})
		return
	}

	resident, err := h.residentService.CreateResident(service.CreateResidentInput{
		FullName:        req.FullName,
		DOB:             dob,
		Gender:          req.Gender,
		IdentityCard:    req.IdentityCard,
		Hometown:        req.Hometown,
		Job:             req.Job,
		Phone:           req.Phone,
		ApartmentID:     req.ApartmentID,
		ResidencyStatus: models.ResidencyStatus(req.ResidencyStatus),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateIdentityCard):
			utils.ConflictResponse(c, err.Error())
		case errors.Is(err, service.ErrApartmentNotFound):
			utils.NotFoundResponse(c, "Apartment not found")
		default:
			h.logger.WithError(err).Error("Failed to create resident")
			utils.InternalServerErrorResponse(c, "Failed to create resident", err)
		}
		return
	}

	utils.CreatedResponse(c, "Resident created successfully", resident)
}

// GetResidents lists all residents
// @Summary List residents
// @Tags residents
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.Resident}
// @Router /api/residents [get]
func (h *ResidentHandler) GetResidents(c *gin.Context) {
	residents, err := h.residentService.ListResidents()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list residents")
		utils.InternalServerErrorResponse(c, "Failed to list residents", err)
		return
	}

	utils.ListResponse(c, len(residents), residents)
}

// GetResident retrieves one resident
// @Summary Get resident
// @Tags residents
// @Produce json
// @Param id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse{data=models.Resident}
// @Failure 404 {object} utils.APIResponse
// @Router /api/residents/{id} [get]
func (h *ResidentHandler) GetResident(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid resident ID", err)
		return
	}

	resident, err := h.residentService.GetResident(id)
	if err != nil {
		if errors.Is(err, service.ErrResidentNotFound) {
			utils.NotFoundResponse(c, "Resident not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to load resident", err)
		return
	}

	utils.SuccessResponse(c, "", resident)
}

// UpdateResident applies a partial update
// @Summary Update resident
// @Tags residents
// @Accept json
// @Produce json
// @Param id path int true "Resident ID"
// @Param request body UpdateResidentRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse{data=models.Resident}
// @Failure 404 {object} utils.APIResponse
// @Router /api/residents/{id} [put]
func (h *ResidentHandler) UpdateResident(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid resident ID", err)
		return
	}

	var req UpdateResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err)
		return
	}

	input := service.UpdateResidentInput{
		FullName:        req.FullName,
		Gender:          req.Gender,
		Hometown:        req.Hometown,
		Job:             req.Job,
		Phone:           req.Phone,
		ApartmentID:     req.ApartmentID,
		DetachApartment: req.DetachApartment,
	}
	if req.ResidencyStatus != nil {
		status := models.ResidencyStatus(*req.ResidencyStatus)
		input.ResidencyStatus = &status
	}

	resident, err := h.residentService.UpdateResident(id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResidentNotFound):
			utils.NotFoundResponse(c, "Resident not found")
		case errors.Is(err, service.ErrApartmentNotFound):
			utils.NotFoundResponse(c, "Apartment not found")
		default:
			utils.InternalServerErrorResponse(c, "Failed to update resident", err)
		}
		return
	}

	utils.SuccessResponse(c, "Resident updated successfully", resident)
}

// DeleteResident removes a resident
// @Summary Delete resident
// @Tags residents
// @Produce json
// @Param id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/residents/{id} [delete]
func (h *ResidentHandler) DeleteResident(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid resident ID", err)
		return
	}

	if err := h.residentService.DeleteResident(id); err != nil {
		if errors.Is(err, service.ErrResidentNotFound) {
			utils.NotFoundResponse(c, "Resident not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to delete resident", err)
		return
	}

	utils.SuccessResponse(c, "Resident deleted successfully", nil)
}
