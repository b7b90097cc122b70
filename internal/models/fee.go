package models

import (
	"time"
)

// FeeType classifies how a fee may be collected
type FeeType string

const (
	FeeTypeService      FeeType = "Service"
	FeeTypeContribution FeeType = "Contribution"
	FeeTypeUtility      FeeType = "Utility"
)

// FeeUnit is the unit of measure a fee is billed by
type FeeUnit string

const (
	FeeUnitApartment FeeUnit = "Apartment"
	FeeUnitPerson    FeeUnit = "Person"
	FeeUnitArea      FeeUnit = "Area"
	FeeUnitKWh       FeeUnit = "KWh"
	FeeUnitWaterCube FeeUnit = "WaterCube"
)

// IsMetered reports whether the unit requires an external meter reading
func (u FeeUnit) IsMetered() bool {
	return u == FeeUnitKWh || u == FeeUnitWaterCube
}

// Fee represents the fees table
type Fee struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Title       string    `json:"title" gorm:"column:title;not null"`
	Description *string   `json:"description,omitempty" gorm:"column:description"`
	Type        FeeType   `json:"type" gorm:"column:type;not null"`
	Unit        FeeUnit   `json:"unit" gorm:"column:unit;not null"`
	Amount      float64   `json:"amount" gorm:"column:amount;not null"`
	IsActive    bool      `json:"isActive" gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName sets the insert table name for Fee
func (Fee) TableName() string {
	return "fees"
}
