package response

import "time"

// FeeInfo summarizes the fee a payment-status report was built for
type FeeInfo struct {
	Title          string  `json:"title"`
	TotalCollected float64 `json:"totalCollected"`
}

// ApartmentPaymentStatus is one apartment's PAID/UNPAID line for a fee
type ApartmentPaymentStatus struct {
	ApartmentID uint       `json:"apartmentId"`
	Name        string     `json:"name"`
	OwnerName   string     `json:"ownerName"`
	Status      string     `json:"status" example:"PAID"`
	PaidAmount  float64    `json:"paidAmount"`
	PaidDate    *time.Time `json:"paidDate"`
}

// FeePaymentStatusResponse is the full per-fee payment status report
type FeePaymentStatusResponse struct {
	FeeInfo    FeeInfo                  `json:"feeInfo"`
	Apartments []ApartmentPaymentStatus `json:"apartments"`
}

// ApartmentRevenueSummary is one apartment's collected revenue rollup.
// Only Completed transactions count toward TotalCollected.
type ApartmentRevenueSummary struct {
	ApartmentID      uint    `json:"apartmentId"`
	Name             string  `json:"name"`
	Building         string  `json:"building"`
	Area             float64 `json:"area"`
	OwnerName        *string `json:"ownerName"`
	TotalCollected   float64 `json:"totalCollected"`
	TransactionCount int64   `json:"transactionCount"`
}
