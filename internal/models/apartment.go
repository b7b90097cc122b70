package models

import (
	"time"
)

// Apartment represents the apartments table (the billing unit / household)
type Apartment struct {
	ID              uint       `json:"id" gorm:"primarykey"`
	Name            string     `json:"name" gorm:"column:name;uniqueIndex;not null"`
	Area            float64    `json:"area" gorm:"column:area;not null"`
	OwnerID         *uint      `json:"ownerId,omitempty" gorm:"column:owner_id"`
	ApartmentNumber *string    `json:"apartmentNumber,omitempty" gorm:"column:apartment_number"`
	Building        *string    `json:"building,omitempty" gorm:"column:building"`
	Owner           *Resident  `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Members         []Resident `json:"members,omitempty" gorm:"foreignKey:ApartmentID"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// TableName sets the insert table name for Apartment
func (Apartment) TableName() string {
	return "apartments"
}

// MemberCount returns the number of registered members
func (a *Apartment) MemberCount() int {
	return len(a.Members)
}
