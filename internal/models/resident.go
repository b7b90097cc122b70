package models

import (
	"time"
)

// ApartmentRole is a resident's role within their household
type ApartmentRole string

const (
	ApartmentRoleOwner  ApartmentRole = "Owner"
	ApartmentRoleMember ApartmentRole = "Member"
)

// ResidencyStatus tracks whether a resident still lives in the complex
type ResidencyStatus string

const (
	ResidencyPermanent ResidencyStatus = "Permanent"
	ResidencyTemporary ResidencyStatus = "Temporary"
	ResidencyAbsent    ResidencyStatus = "Absent"
	ResidencyMovedOut  ResidencyStatus = "MovedOut"
)

// Resident represents the residents table. The apartment's member list is
// derived from ApartmentID back-references.
type Resident struct {
	ID              uint            `json:"id" gorm:"primarykey"`
	FullName        string          `json:"fullName" gorm:"column:full_name;not null"`
	DOB             time.Time       `json:"dob" gorm:"column:dob"`
	Gender          string          `json:"gender" gorm:"column:gender"`
	IdentityCard    string          `json:"identityCard" gorm:"column:identity_card;uniqueIndex;not null"`
	Hometown        string          `json:"hometown" gorm:"column:hometown"`
	Job             string          `json:"job" gorm:"column:job"`
	Phone           *string         `json:"phone,omitempty" gorm:"column:phone"`
	ApartmentID     *uint           `json:"apartmentId,omitempty" gorm:"column:apartment_id"`
	RoleInApartment ApartmentRole   `json:"roleInApartment" gorm:"column:role_in_apartment;default:Member"`
	ResidencyStatus ResidencyStatus `json:"residencyStatus" gorm:"column:residency_status;default:Permanent"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// TableName sets the insert table name for Resident
func (Resident) TableName() string {
	return "residents"
}
