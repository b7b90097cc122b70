package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nqd2/bluemoon-admin-api/internal/service"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
	"github.com/nqd2/bluemoon-admin-api/pkg/utils"
)

// CreateApartmentRequest represents the apartment-creation payload
type CreateApartmentRequest struct {
	Name            string  `json:"name" binding:"required"`
	Area            float64 `json:"area" binding:"required,gt=0"`
	OwnerID         *uint   `json:"ownerId,omitempty"`
	ApartmentNumber *string `json:"apartmentNumber,omitempty"`
	Building        *string `json:"building,omitempty"`
}

// UpdateApartmentRequest represents a partial apartment update
type UpdateApartmentRequest struct {
	Name            *string  `json:"name,omitempty"`
	Area            *float64 `json:"area,omitempty" binding:"omitempty,gt=0"`
	OwnerID         *uint    `json:"ownerId,omitempty"`
	ApartmentNumber *string  `json:"apartmentNumber,omitempty"`
	Building        *string  `json:"building,omitempty"`
}

// ApartmentHandler handles apartment registry HTTP requests
type ApartmentHandler struct {
	apartmentService service.ApartmentService
	logger           *logger.Logger
}

// NewApartmentHandler creates a new ApartmentHandler instance
func NewApartmentHandler(apartmentService service.ApartmentService, logger *logger.Logger) *ApartmentHandler {
	return &ApartmentHandler{
		apartmentService: apartmentService,
		logger:           logger,
	}
}

// CreateApartment creates a household record
// @Summary Create apartment
// @Tags apartments
// @Accept json
// @Produce json
// @Param request body CreateApartmentRequest true "Apartment"
// @Success 201 {object} utils.APIResponse{data=models.Apartment}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/apartments [post]
func (h *ApartmentHandler) CreateApartment(c *gin.Context) {
	var req CreateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err)
		return
	}

	apartment, err := h.apartmentService.CreateApartment(service.CreateApartmentInput{
		Name:            req.Name,
		Area:            req.Area,
		OwnerID:         req.OwnerID,
		ApartmentNumber: req.ApartmentNumber,
		Building:        req.Building,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateApartmentName):
			utils.ConflictResponse(c, err.Error())
		case errors.Is(err, service.ErrResidentNotFound):
			utils.NotFoundResponse(c, "Owner resident not found")
		default:
			h.logger.WithError(err).Error("Failed to create apartment")
			utils.InternalServerErrorResponse(c, "Failed to create apartment", err)
		}
		return
	}

	utils.CreatedResponse(c, "Apartment created successfully", apartment)
}

// GetApartments lists all apartments
// @Summary List apartments
// @Tags apartments
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.Apartment}
// @Router /api/apartments [get]
func (h *ApartmentHandler) GetApartments(c *gin.Context) {
	apartments, err := h.apartmentService.ListApartments()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list apartments")
		utils.InternalServerErrorResponse(c, "Failed to list apartments", err)
		return
	}

	utils.ListResponse(c, len(apartments), apartments)
}

// GetApartment retrieves one apartment with members resolved
// @Summary Get apartment
// @Tags apartments
// @Produce json
// @Param id path int true "Apartment ID"
// @Success 200 {object} utils.APIResponse{data=models.Apartment}
// @Failure 404 {object} utils.APIResponse
// @Router /api/apartments/{id} [get]
func (h *ApartmentHandler) GetApartment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid apartment ID", err)
		return
	}

	apartment, err := h.apartmentService.GetApartment(id)
	if err != nil {
		if errors.Is(err, service.ErrApartmentNotFound) {
			utils.NotFoundResponse(c, "Apartment not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to load apartment", err)
		return
	}

	utils.SuccessResponse(c, "", apartment)
}

// UpdateApartment applies a partial update
// @Summary Update apartment
// @Tags apartments
// @Accept json
// @Produce json
// @Param id path int true "Apartment ID"
// @Param request body UpdateApartmentRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse{data=models.Apartment}
// @Failure 404 {object} utils.APIResponse
// @Router /api/apartments/{id} [put]
func (h *ApartmentHandler) UpdateApartment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid apartment ID", err)
		return
	}

	var req UpdateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err)
		return
	}

	apartment, err := h.apartmentService.UpdateApartment(id, service.UpdateApartmentInput{
		Name:            req.Name,
		Area:            req.Area,
		OwnerID:         req.OwnerID,
		ApartmentNumber: req.ApartmentNumber,
		Building:        req.Building,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApartmentNotFound):
			utils.NotFoundResponse(c, "Apartment not found")
		case errors.Is(err, service.ErrResidentNotFound):
			utils.NotFoundResponse(c, "Owner resident not found")
		case errors.Is(err, service.ErrDuplicateApartmentName):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.InternalServerErrorResponse(c, "Failed to update apartment", err)
		}
		return
	}

	utils.SuccessResponse(c, "Apartment updated successfully", apartment)
}

// DeleteApartment removes an apartment
// @Summary Delete apartment
// @Tags apartments
// @Produce json
// @Param id path int true "Apartment ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/apartments/{id} [delete]
func (h *ApartmentHandler) DeleteApartment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid apartment ID", err)
		return
	}

	if err := h.apartmentService.DeleteApartment(id); err != nil {
		if errors.Is(err, service.ErrApartmentNotFound) {
			utils.NotFoundResponse(c, "Apartment not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to delete apartment", err)
		return
	}

	utils.SuccessResponse(c, "Apartment deleted successfully", nil)
}
