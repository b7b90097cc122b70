package response

import "time"

// RecentTransaction is one row of the dashboard's recent-activity list
type RecentTransaction struct {
	Apartment string    `json:"apartment" example:"P102"`
	Fee       string    `json:"fee" example:"Service Fee 2025"`
	Amount    float64   `json:"amount" example:"400000"`
	Date      time.Time `json:"date"`
}

// ApartmentStatusCount is the occupancy split by owner presence
type ApartmentStatusCount struct {
	Status string `json:"status" example:"Occupied"`
	Count  int64  `json:"count" example:"12"`
}

// BuildingCount is the number of apartments per building
type BuildingCount struct {
	Building string `json:"building" example:"A"`
	Count    int64  `json:"count" example:"8"`
}

// ApartmentStats groups the apartment breakdowns on the dashboard
type ApartmentStats struct {
	Total      int64                  `json:"total" example:"20"`
	Status     []ApartmentStatusCount `json:"status"`
	ByBuilding []BuildingCount        `json:"byBuilding"`
}

// DashboardStatsResponse is the dashboard summary payload
type DashboardStatsResponse struct {
	TotalResidents      int64               `json:"totalResidents" example:"54"`
	TotalApartments     int64               `json:"totalApartments" example:"20"`
	TotalRevenue        float64             `json:"totalRevenue" example:"12500000"`
	CurrentMonthRevenue float64             `json:"currentMonthRevenue" example:"800000"`
	RecentTransactions  []RecentTransaction `json:"recentTransactions"`
	ApartmentStats      ApartmentStats      `json:"apartmentStats"`
}
