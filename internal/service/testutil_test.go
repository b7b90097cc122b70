package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/repository"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
)

// testEnv wires every service against one in-memory database
type testEnv struct {
	db           *gorm.DB
	fees         FeeService
	apartments   ApartmentService
	residents    ResidentService
	transactions TransactionService
	billing      BillingService
	dashboard    DashboardService
	calculator   CalculationService
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Resident{},
		&models.Apartment{},
		&models.Fee{},
		&models.Transaction{},
		&models.SchedulerLog{},
	)
	require.NoError(t, err)

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	log := logger.NewLogger("error", "text")

	feeRepo := repository.NewFeeRepository(db)
	apartmentRepo := repository.NewApartmentRepository(db)
	residentRepo := repository.NewResidentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	calculator := NewCalculationService()

	return &testEnv{
		db:           db,
		fees:         NewFeeService(feeRepo, apartmentRepo, transactionRepo, log),
		apartments:   NewApartmentService(apartmentRepo, residentRepo, log),
		residents:    NewResidentService(residentRepo, apartmentRepo, log),
		transactions: NewTransactionService(transactionRepo, feeRepo, apartmentRepo, dashboardRepo, log),
		billing:      NewBillingService(feeRepo, apartmentRepo, transactionRepo, calculator, log),
		dashboard:    NewDashboardService(dashboardRepo, log),
		calculator:   calculator,
	}
}

func (e *testEnv) seedFee(t *testing.T, title string, feeType models.FeeType, unit models.FeeUnit, amount float64) *models.Fee {
	t.Helper()

	fee, err := e.fees.CreateFee(CreateFeeInput{
		Title:  title,
		Type:   feeType,
		Unit:   unit,
		Amount: amount,
	})
	require.NoError(t, err)
	return fee
}

// seedApartment inserts an apartment with the given number of member
// residents attached
func (e *testEnv) seedApartment(t *testing.T, name string, area float64, members int) *models.Apartment {
	t.Helper()

	apartment := &models.Apartment{Name: name, Area: area}
	require.NoError(t, e.db.Create(apartment).Error)

	for i := 0; i < members; i++ {
		resident := &models.Resident{
			FullName:     fmt.Sprintf("%s resident %d", name, i+1),
			IdentityCard: fmt.Sprintf("%s-%03d", name, i+1),
			ApartmentID:  &apartment.ID,
		}
		require.NoError(t, e.db.Create(resident).Error)
		apartment.Members = append(apartment.Members, *resident)
	}

	return apartment
}
