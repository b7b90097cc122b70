package models

import (
	"time"
)

// UserRole is the system-level role of an account
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleLeader     UserRole = "leader"
	RoleAccountant UserRole = "accountant"
)

// User represents the users table (staff accounts, not residents)
type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Email     string    `json:"email" gorm:"column:email;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"column:password;not null"`
	Role      UserRole  `json:"role" gorm:"column:role;default:accountant"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the insert table name for User
func (User) TableName() string {
	return "users"
}
