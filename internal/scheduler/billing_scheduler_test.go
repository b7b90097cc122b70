package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/repository"
	"github.com/nqd2/bluemoon-admin-api/internal/service"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
)

func newTestScheduler(t *testing.T) (*BillingScheduler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Resident{}, &models.Apartment{}, &models.Fee{},
		&models.Transaction{}, &models.SchedulerLog{},
	))

	log := logger.NewLogger("error", "text")
	feeRepo := repository.NewFeeRepository(db)
	apartmentRepo := repository.NewApartmentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	billing := service.NewBillingService(feeRepo, apartmentRepo, transactionRepo, service.NewCalculationService(), log)

	return NewBillingScheduler(billing, repository.NewSchedulerLogRepository(db), log, "0 0 0 1 * *"), db
}

func TestGenerateMonthlyBills(t *testing.T) {
	s, db := newTestScheduler(t)

	require.NoError(t, db.Create(&models.Fee{
		Title: "Service Fee 2025", Type: models.FeeTypeService,
		Unit: models.FeeUnitArea, Amount: 5000, IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&models.Apartment{Name: "P102", Area: 80}).Error)

	s.generateMonthlyBills()

	var bills int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&bills).Error)
	assert.Equal(t, int64(1), bills)

	var logs []models.SchedulerLog
	require.NoError(t, db.Order("id").Find(&logs).Error)
	require.Len(t, logs, 3)
	assert.Equal(t, "START", logs[0].Status)
	assert.Equal(t, "RUNNING", logs[1].Status)
	assert.Equal(t, "SUCCESS", logs[2].Status)
	for _, entry := range logs {
		assert.Equal(t, "MONTHLY_BILL_GENERATION", entry.JobCode)
		assert.Equal(t, logs[0].RunID, entry.RunID)
	}
}

func TestSchedulerStartRejectsBadExpression(t *testing.T) {
	s, _ := newTestScheduler(t)
	s.cronExpression = "not a cron line"

	assert.Error(t, s.Start())
}
