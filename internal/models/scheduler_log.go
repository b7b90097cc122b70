package models

import (
	"time"
)

// SchedulerLog represents the scheduler_logs table, one row per scheduler
// run status transition
type SchedulerLog struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	RunID     string     `json:"runId" gorm:"column:run_id"`
	JobCode   string     `json:"jobCode" gorm:"column:job_code"`
	Message   string     `json:"message" gorm:"column:message"`
	Status    string     `json:"status" gorm:"column:status"`
	CreatedAt *time.Time `json:"createdAt"`
}

// TableName sets the insert table name for SchedulerLog
func (SchedulerLog) TableName() string {
	return "scheduler_logs"
}
