package repository

import (
	"github.com/nqd2/bluemoon-admin-api/internal/models"

	"gorm.io/gorm"
)

// SchedulerLogRepository defines the interface for scheduler log operations
type SchedulerLogRepository interface {
	Create(logEntry *models.SchedulerLog) error
}

// schedulerLogRepository implements SchedulerLogRepository
type schedulerLogRepository struct {
	db *gorm.DB
}

// NewSchedulerLogRepository creates a new instance of SchedulerLogRepository
func NewSchedulerLogRepository(db *gorm.DB) SchedulerLogRepository {
	return &schedulerLogRepository{
		db: db,
	}
}

// Create persists a scheduler log entry
func (r *schedulerLogRepository) Create(logEntry *models.SchedulerLog) error {
	return r.db.Create(logEntry).Error
}
