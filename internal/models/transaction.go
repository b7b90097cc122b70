package models

import (
	"time"
)

// TransactionStatus is the lifecycle state of a bill/payment record
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "Pending"
	TransactionCompleted TransactionStatus = "Completed"
	TransactionCancelled TransactionStatus = "Cancelled"
)

// Transaction represents the transactions table. One row is one bill for a
// specific apartment, fee and period; the composite unique index prevents a
// second bill for the same (apartment, fee, month, year).
type Transaction struct {
	ID          uint              `json:"id" gorm:"primarykey"`
	ReceiptNo   string            `json:"receiptNo" gorm:"column:receipt_no"`
	ApartmentID uint              `json:"apartmentId" gorm:"column:apartment_id;not null;uniqueIndex:idx_apartment_fee_period,priority:1"`
	FeeID       uint              `json:"feeId" gorm:"column:fee_id;not null;uniqueIndex:idx_apartment_fee_period,priority:2"`
	Month       int               `json:"month" gorm:"column:month;not null;uniqueIndex:idx_apartment_fee_period,priority:3"`
	Year        int               `json:"year" gorm:"column:year;not null;uniqueIndex:idx_apartment_fee_period,priority:4"`
	TotalAmount float64           `json:"totalAmount" gorm:"column:total_amount;not null"`
	Quantity    float64           `json:"quantity" gorm:"column:quantity"`
	Usage       *float64          `json:"usage,omitempty" gorm:"column:usage"`
	UnitPrice   *float64          `json:"unitPrice,omitempty" gorm:"column:unit_price"`
	Status      TransactionStatus `json:"status" gorm:"column:status;default:Pending"`
	PayerName   *string           `json:"payerName,omitempty" gorm:"column:payer_name"`
	CreatedByID *uint             `json:"createdBy,omitempty" gorm:"column:created_by_id"`
	Date        time.Time         `json:"date" gorm:"column:date"`
	Apartment   *Apartment        `json:"apartment,omitempty" gorm:"foreignKey:ApartmentID"`
	Fee         *Fee              `json:"fee,omitempty" gorm:"foreignKey:FeeID"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// TableName sets the insert table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
