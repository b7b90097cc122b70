package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/service"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
	"github.com/nqd2/bluemoon-admin-api/pkg/utils"
)

// CreateFeeRequest represents the fee-creation payload
type CreateFeeRequest struct {
	Title       string  `json:"title" binding:"required,min=5"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type" binding:"required,oneof=Service Contribution Utility"`
	Unit        string  `json:"unit" binding:"required,oneof=Apartment Person Area KWh WaterCube"`
	Amount      float64 `json:"amount" binding:"min=0"`
}

// UpdateFeeRequest represents a partial fee correction
type UpdateFeeRequest struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,min=5"`
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty" binding:"omitempty,min=0"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

// FeeHandler handles fee catalog HTTP requests
type FeeHandler struct {
	feeService service.FeeService
	logger     *logger.Logger
}

// NewFeeHandler creates a new FeeHandler instance
func NewFeeHandler(feeService service.FeeService, logger *logger.Logger) *FeeHandler {
	return &FeeHandler{
		feeService: feeService,
		logger:     logger,
	}
}

// CreateFee creates a fee definition
// @Summary Create fee
// @Tags fees
// @Accept json
// @Produce json
// @Param request body CreateFeeRequest true "Fee definition"
// @Success 201 {object} utils.APIResponse{data=models.Fee}
// @Failure 400 {object} utils.APIResponse
// @Router /api/fees [post]
func (h *FeeHandler) CreateFee(c *gin.Context) {
	var req CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err)
		return
	}

	fee, err := h.feeService.CreateFee(service.CreateFeeInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        models.FeeType(req.Type),
		Unit:        models.FeeUnit(req.Unit),
		Amount:      req.Amount,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to create fee")
		utils.InternalServerErrorResponse(c, "Failed to create fee", err)
		return
	}

	utils.CreatedResponse(c, "Fee created successfully", fee)
}

// GetFees lists fees
// @Summary List fees
// @Tags fees
// @Produce json
// @Param type query string false "Filter by fee type"
// @Param active query bool false "Only active fees"
// @Param limit query int false "Max results (default 20)"
// @Success 200 {object} utils.APIResponse{data=[]models.Fee}
// @Router /api/fees [get]
func (h *FeeHandler) GetFees(c *gin.Context) {
	feeType := c.Query("type")
	activeOnly := c.Query("active") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	fees, err := h.feeService.ListFees(feeType, activeOnly, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list fees")
		utils.InternalServerErrorResponse(c, "Failed to list fees", err)
		return
	}

	utils.ListResponse(c, len(fees), fees)
}

// GetFee retrieves one fee
// @Summary Get fee
// @Tags fees
// @Produce json
// @Param id path int true "Fee ID"
// @Success 200 {object} utils.APIResponse{data=models.Fee}
// @Failure 404 {object} utils.APIResponse
// @Router /api/fees/{id} [get]
func (h *FeeHandler) GetFee(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid fee ID", err)
		return
	}

	fee, err := h.feeService.GetFee(id)
	if err != nil {
		if errors.Is(err, service.ErrFeeNotFound) {
			utils.NotFoundResponse(c, "Fee not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to load fee", err)
		return
	}

	utils.SuccessResponse(c, "", fee)
}

// UpdateFee applies an administrative correction
// @Summary Update fee
// @Tags fees
// @Accept json
// @Produce json
// @Param id path int true "Fee ID"
// @Param request body UpdateFeeRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse{data=models.Fee}
// @Failure 404 {object} utils.APIResponse
// @Router /api/fees/{id} [put]
func (h *FeeHandler) UpdateFee(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid fee ID", err)
		return
	}

	var req UpdateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err)
		return
	}

	fee, err := h.feeService.UpdateFee(id, service.UpdateFeeInput{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		IsActive:    req.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrFeeNotFound) {
			utils.NotFoundResponse(c, "Fee not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to update fee", err)
		return
	}

	utils.SuccessResponse(c, "Fee updated successfully", fee)
}

// DeleteFee removes or soft-disables a fee
// @Summary Delete fee
// @Description Fees referenced by transactions are disabled instead of deleted to preserve history
// @Tags fees
// @Produce json
// @Param id path int true "Fee ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/fees/{id} [delete]
func (h *FeeHandler) DeleteFee(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid fee ID", err)
		return
	}

	deleted, err := h.feeService.DeleteFee(id)
	if err != nil {
		if errors.Is(err, service.ErrFeeNotFound) {
			utils.NotFoundResponse(c, "Fee not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to delete fee", err)
		return
	}

	if deleted {
		utils.SuccessResponse(c, "Fee deleted successfully", nil)
		return
	}
	utils.SuccessResponse(c, "Fee is referenced by transactions and was disabled instead", nil)
}

// GetFeePaymentStatus reports PAID/UNPAID per apartment for a fee
// @Summary Fee payment status
// @Tags fees
// @Produce json
// @Param id path int true "Fee ID"
// @Success 200 {object} response.FeePaymentStatusResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/fees/{id}/status [get]
func (h *FeeHandler) GetFeePaymentStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid fee ID", err)
		return
	}

	status, err := h.feeService.GetFeePaymentStatus(id)
	if err != nil {
		if errors.Is(err, service.ErrFeeNotFound) {
			utils.NotFoundResponse(c, "Fee not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to build payment status", err)
		return
	}

	c.JSON(200, gin.H{
		"success":    true,
		"feeInfo":    status.FeeInfo,
		"apartments": status.Apartments,
	})
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
