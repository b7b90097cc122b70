package service

import (
	"time"

	"github.com/nqd2/bluemoon-admin-api/internal/models/response"
	"github.com/nqd2/bluemoon-admin-api/internal/repository"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
)

// recentTransactionLimit caps the dashboard activity feed
const recentTransactionLimit = 5

// DashboardService interface defines dashboard service methods
type DashboardService interface {
	GetDashboardStats() (*response.DashboardStatsResponse, error)
}

// dashboardService implements DashboardService interface
type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	logger        *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo repository.DashboardRepository, logger *logger.Logger) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		logger:        logger,
	}
}

// GetDashboardStats assembles the dashboard summary. Every call recomputes
// from the ledger; there is no caching.
func (s *dashboardService) GetDashboardStats() (*response.DashboardStatsResponse, error) {
	totalResidents, err := s.dashboardRepo.CountActiveResidents()
	if err != nil {
		s.logger.WithError(err).Error("Failed to count residents")
		return nil, err
	}

	totalApartments, err := s.dashboardRepo.CountApartments()
	if err != nil {
		s.logger.WithError(err).Error("Failed to count apartments")
		return nil, err
	}

	totalRevenue, err := s.dashboardRepo.TotalRevenue()
	if err != nil {
		s.logger.WithError(err).Error("Failed to sum total revenue")
		return nil, err
	}

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	currentMonthRevenue, err := s.dashboardRepo.RevenueSince(startOfMonth)
	if err != nil {
		s.logger.WithError(err).Error("Failed to sum current month revenue")
		return nil, err
	}

	recentRows, err := s.dashboardRepo.RecentTransactions(recentTransactionLimit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load recent transactions")
		return nil, err
	}
	recent := make([]response.RecentTransaction, 0, len(recentRows))
	for _, row := range recentRows {
		recent = append(recent, *row)
	}

	statusCounts, err := s.dashboardRepo.ApartmentStatusCounts()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load apartment status counts")
		return nil, err
	}

	buildingCounts, err := s.dashboardRepo.BuildingCounts()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load building counts")
		return nil, err
	}
	if buildingCounts == nil {
		buildingCounts = []response.BuildingCount{}
	}

	stats := &response.DashboardStatsResponse{
		TotalResidents:      totalResidents,
		TotalApartments:     totalApartments,
		TotalRevenue:        totalRevenue,
		CurrentMonthRevenue: currentMonthRevenue,
		RecentTransactions:  recent,
		ApartmentStats: response.ApartmentStats{
			Total:      totalApartments,
			Status:     statusCounts,
			ByBuilding: buildingCounts,
		},
	}

	s.logger.WithFields(map[string]interface{}{
		"total_residents":  totalResidents,
		"total_apartments": totalApartments,
		"total_revenue":    totalRevenue,
	}).Info("Dashboard statistics retrieved successfully")

	return stats, nil
}
