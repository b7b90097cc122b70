package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
)

func TestGetDashboardStats(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Service Fee 2025", models.FeeTypeService, models.FeeUnitArea, 5000)
	occupied := env.seedApartment(t, "P102", 80, 2)
	vacant := env.seedApartment(t, "P201", 60, 0)

	buildingA := "A"
	require.NoError(t, env.db.Model(occupied).Update("building", buildingA).Error)

	// Mark the first member as owner so P102 counts as Occupied
	ownerID := occupied.Members[0].ID
	require.NoError(t, env.db.Model(occupied).Update("owner_id", ownerID).Error)

	// One member has moved out and drops off the resident count
	movedOut := &models.Resident{
		FullName:        "Moved Out",
		IdentityCard:    "gone-001",
		ResidencyStatus: models.ResidencyMovedOut,
	}
	require.NoError(t, env.db.Create(movedOut).Error)

	_, err := env.transactions.RecordPayment(RecordPaymentInput{
		ApartmentID: occupied.ID, FeeID: fee.ID, TotalAmount: 400000,
		PayerName: "Nguyen Van A",
	})
	require.NoError(t, err)

	stats, err := env.dashboard.GetDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalResidents)
	assert.Equal(t, int64(2), stats.TotalApartments)
	assert.Equal(t, float64(400000), stats.TotalRevenue)
	assert.Equal(t, float64(400000), stats.CurrentMonthRevenue)

	require.Len(t, stats.RecentTransactions, 1)
	assert.Equal(t, "P102", stats.RecentTransactions[0].Apartment)
	assert.Equal(t, "Service Fee 2025", stats.RecentTransactions[0].Fee)
	assert.Equal(t, float64(400000), stats.RecentTransactions[0].Amount)

	assert.Equal(t, int64(2), stats.ApartmentStats.Total)

	statusByName := make(map[string]int64, len(stats.ApartmentStats.Status))
	for _, row := range stats.ApartmentStats.Status {
		statusByName[row.Status] = row.Count
	}
	assert.Equal(t, int64(1), statusByName["Occupied"], "apartment %d should be occupied", occupied.ID)
	assert.Equal(t, int64(1), statusByName["Vacant"], "apartment %d should be vacant", vacant.ID)

	buildingByName := make(map[string]int64, len(stats.ApartmentStats.ByBuilding))
	for _, row := range stats.ApartmentStats.ByBuilding {
		buildingByName[row.Building] = row.Count
	}
	assert.Equal(t, int64(1), buildingByName["A"])
	assert.Equal(t, int64(1), buildingByName["Unknown"])
}

func TestGetDashboardStatsEmptyDatabase(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.dashboard.GetDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalResidents)
	assert.Equal(t, int64(0), stats.TotalApartments)
	assert.Equal(t, float64(0), stats.TotalRevenue)
	assert.Equal(t, float64(0), stats.CurrentMonthRevenue)
	assert.Empty(t, stats.RecentTransactions)
	assert.NotNil(t, stats.ApartmentStats.ByBuilding)
}

func TestRecentTransactionsLimit(t *testing.T) {
	env := newTestEnv(t)

	fee := env.seedFee(t, "Flood Relief", models.FeeTypeContribution, models.FeeUnitApartment, 0)
	apartment := env.seedApartment(t, "P102", 80, 1)

	for month := 1; month <= 7; month++ {
		_, err := env.transactions.RecordPayment(RecordPaymentInput{
			ApartmentID: apartment.ID, FeeID: fee.ID, TotalAmount: 10000,
			PayerName: "Nguyen Van A", Month: month, Year: 2026,
		})
		require.NoError(t, err)
	}

	stats, err := env.dashboard.GetDashboardStats()
	require.NoError(t, err)
	assert.Len(t, stats.RecentTransactions, 5)
}
