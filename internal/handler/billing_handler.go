package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nqd2/bluemoon-admin-api/internal/service"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
	"github.com/nqd2/bluemoon-admin-api/pkg/utils"
)

// GenerateBillsRequest triggers one billing batch. Month and year default to
// the current period; usageReadings supplies meter readings keyed by
// apartment ID then fee ID.
type GenerateBillsRequest struct {
	Month         int                       `json:"month,omitempty" binding:"omitempty,min=1,max=12"`
	Year          int                       `json:"year,omitempty" binding:"omitempty,min=2000"`
	UsageReadings map[uint]map[uint]float64 `json:"usageReadings,omitempty"`
}

// GenerateBillsResponse is the literal batch summary payload
type GenerateBillsResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Created int                 `json:"created"`
	Skipped int                 `json:"skipped"`
	Errors  []service.BillError `json:"errors,omitempty"`
}

// BillingHandler handles billing batch HTTP requests
type BillingHandler struct {
	billingService service.BillingService
	logger         *logger.Logger
}

// NewBillingHandler creates a new BillingHandler instance
func NewBillingHandler(billingService service.BillingService, logger *logger.Logger) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		logger:         logger,
	}
}

// GenerateBills runs the monthly billing batch. The batch is idempotent:
// re-running it for the same period skips pairs that already have a bill.
// @Summary Generate monthly bills
// @Tags billing
// @Accept json
// @Produce json
// @Param request body GenerateBillsRequest true "Billing period"
// @Success 201 {object} GenerateBillsResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/billing/generate-bills [post]
func (h *BillingHandler) GenerateBills(c *gin.Context) {
	var req GenerateBillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err)
		return
	}

	now := time.Now()
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if req.Year == 0 {
		req.Year = now.Year()
	}

	result, err := h.billingService.GenerateBills(req.Month, req.Year, req.UsageReadings)
	if err != nil {
		h.logger.WithError(err).Error("Billing batch failed")
		utils.InternalServerErrorResponse(c, "Failed to generate bills", err)
		return
	}

	c.JSON(http.StatusCreated, GenerateBillsResponse{
		Success: true,
		Message: fmt.Sprintf("Generated %d bills.", result.Created),
		Created: result.Created,
		Skipped: result.Skipped,
		Errors:  result.Errors,
	})
}
