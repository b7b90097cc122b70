package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nqd2/bluemoon-admin-api/internal/service"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
	"github.com/nqd2/bluemoon-admin-api/pkg/utils"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetStats returns the dashboard summary. Figures are recomputed from the
// ledger on every call.
// @Summary Dashboard statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response.DashboardStatsResponse}
// @Router /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to build dashboard stats")
		utils.InternalServerErrorResponse(c, "Failed to build dashboard stats", err)
		return
	}

	utils.SuccessResponse(c, "", stats)
}
