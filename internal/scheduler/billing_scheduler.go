package scheduler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/repository"
	"github.com/nqd2/bluemoon-admin-api/internal/service"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
)

// BillingScheduler handles scheduled billing operations
type BillingScheduler struct {
	billingService   service.BillingService
	schedulerLogRepo repository.SchedulerLogRepository
	logger           *logger.Logger
	cron             *cron.Cron
	cronExpression   string
}

// NewBillingScheduler creates a new billing scheduler
func NewBillingScheduler(
	billingService service.BillingService,
	schedulerLogRepo repository.SchedulerLogRepository,
	logger *logger.Logger,
	cronExpression string,
) *BillingScheduler {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &BillingScheduler{
		billingService:   billingService,
		schedulerLogRepo: schedulerLogRepo,
		logger:           logger,
		cron:             c,
		cronExpression:   cronExpression,
	}
}

// Start initializes and starts all scheduled jobs
func (s *BillingScheduler) Start() error {
	s.logger.Info("Starting billing scheduler...")

	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling billing job")
	_, err := s.cron.AddFunc(s.cronExpression, s.generateMonthlyBills)
	if err != nil {
		return fmt.Errorf("failed to schedule monthly billing job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Billing scheduler started successfully")

	return nil
}

// Stop gracefully stops the scheduler and waits for a running job to finish
func (s *BillingScheduler) Stop() {
	s.logger.Info("Stopping billing scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Billing scheduler stopped successfully")
}

// generateMonthlyBills is the scheduled job that runs the billing batch for
// the current period. Scheduled runs carry no meter readings, so metered
// fees are left for manual billing once readings arrive.
func (s *BillingScheduler) generateMonthlyBills() {
	jobCode := "MONTHLY_BILL_GENERATION"
	now := time.Now()
	runID := uuid.New().String()

	s.logScheduler(jobCode, runID, "Starting scheduled monthly bill generation", "START", &now)
	s.logger.Info("Starting scheduled monthly bill generation...")

	month := int(now.Month())
	year := now.Year()

	runningMessage := fmt.Sprintf("Generating bills for month %d year %d", month, year)
	s.logScheduler(jobCode, runID, runningMessage, "RUNNING", &now)

	result, err := s.billingService.GenerateBills(month, year, nil)
	if err != nil {
		failedMessage := fmt.Sprintf("Failed to generate bills: %v", err)
		s.logScheduler(jobCode, runID, failedMessage, "FAILED", &now)
		s.logger.WithError(err).Error("Failed to generate bills")
		return
	}

	resultJSON, _ := json.Marshal(result)
	successMessage := fmt.Sprintf("Bills generated successfully: %s", string(resultJSON))
	s.logScheduler(jobCode, runID, successMessage, "SUCCESS", &now)

	s.logger.WithField("created", result.Created).
		WithField("skipped", result.Skipped).
		WithField("errors", len(result.Errors)).
		Info("Scheduled monthly bill generation completed")
}

// logScheduler creates a new log entry in the database
func (s *BillingScheduler) logScheduler(jobCode, runID, message, status string, createdAt *time.Time) {
	logEntry := &models.SchedulerLog{
		RunID:     runID,
		JobCode:   jobCode,
		Message:   message,
		Status:    status,
		CreatedAt: createdAt,
	}

	if err := s.schedulerLogRepo.Create(logEntry); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to create scheduler log entry")
	}
}
