package repository

import (
	"time"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/models/response"

	"gorm.io/gorm"
)

// DashboardRepository defines the interface for aggregation queries over the
// ledger and the registry. All views are recomputed per request, no caching.
type DashboardRepository interface {
	CountActiveResidents() (int64, error)
	CountApartments() (int64, error)
	TotalRevenue() (float64, error)
	RevenueSince(since time.Time) (float64, error)
	RecentTransactions(limit int) ([]*response.RecentTransaction, error)
	ApartmentStatusCounts() ([]response.ApartmentStatusCount, error)
	BuildingCounts() ([]response.BuildingCount, error)
	ApartmentRevenueSummaries() ([]*response.ApartmentRevenueSummary, error)
}

// dashboardRepository implements DashboardRepository
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new instance of DashboardRepository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// CountActiveResidents counts residents that have not moved out
func (r *dashboardRepository) CountActiveResidents() (int64, error) {
	var count int64

	err := r.db.Model(&models.Resident{}).
		Where("residency_status <> ?", models.ResidencyMovedOut).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CountApartments counts all apartments
func (r *dashboardRepository) CountApartments() (int64, error) {
	var count int64

	err := r.db.Model(&models.Apartment{}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// TotalRevenue sums all transaction amounts regardless of status
func (r *dashboardRepository) TotalRevenue() (float64, error) {
	var total float64

	err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

// RevenueSince sums transaction amounts dated at or after the given time
func (r *dashboardRepository) RevenueSince(since time.Time) (float64, error) {
	var total float64

	err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("date >= ?", since).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

// RecentTransactions retrieves the latest transactions with apartment name
// and fee title joined in
func (r *dashboardRepository) RecentTransactions(limit int) ([]*response.RecentTransaction, error) {
	var rows []*response.RecentTransaction

	query := `
		SELECT a.name AS apartment, f.title AS fee, t.total_amount AS amount, t.date
		FROM transactions t
		JOIN apartments a ON a.id = t.apartment_id
		JOIN fees f ON f.id = t.fee_id
		ORDER BY t.date DESC
		LIMIT ?
	`

	err := r.db.Raw(query, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// ApartmentStatusCounts splits apartments into Occupied/Vacant by owner presence
func (r *dashboardRepository) ApartmentStatusCounts() ([]response.ApartmentStatusCount, error) {
	var rows []response.ApartmentStatusCount

	query := `
		SELECT CASE WHEN owner_id IS NULL THEN 'Vacant' ELSE 'Occupied' END AS status,
		       COUNT(*) AS count
		FROM apartments
		GROUP BY CASE WHEN owner_id IS NULL THEN 'Vacant' ELSE 'Occupied' END
	`

	err := r.db.Raw(query).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// BuildingCounts counts apartments per building label
func (r *dashboardRepository) BuildingCounts() ([]response.BuildingCount, error) {
	var rows []response.BuildingCount

	query := `
		SELECT COALESCE(building, 'Unknown') AS building, COUNT(*) AS count
		FROM apartments
		GROUP BY COALESCE(building, 'Unknown')
		ORDER BY building
	`

	err := r.db.Raw(query).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// ApartmentRevenueSummaries aggregates Completed transactions per apartment
func (r *dashboardRepository) ApartmentRevenueSummaries() ([]*response.ApartmentRevenueSummary, error) {
	var rows []*response.ApartmentRevenueSummary

	query := `
		SELECT a.id AS apartment_id, a.name, COALESCE(a.building, '') AS building, a.area,
		       res.full_name AS owner_name,
		       COALESCE(SUM(t.total_amount), 0) AS total_collected,
		       COUNT(t.id) AS transaction_count
		FROM apartments a
		JOIN transactions t ON t.apartment_id = a.id AND t.status = ?
		LEFT JOIN residents res ON res.id = a.owner_id
		GROUP BY a.id, a.name, a.building, a.area, res.full_name
		ORDER BY total_collected DESC
	`

	err := r.db.Raw(query, models.TransactionCompleted).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
