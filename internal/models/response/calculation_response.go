package response

// FeeCalculationResponse is the payload of the single-fee calculate endpoint
type FeeCalculationResponse struct {
	Apartment   string   `json:"apartment" example:"P102"`
	Fee         string   `json:"fee" example:"Service Fee 2025"`
	UnitPrice   float64  `json:"unitPrice" example:"5000"`
	Quantity    float64  `json:"quantity" example:"80"`
	TotalAmount float64  `json:"totalAmount" example:"400000"`
	Usage       *float64 `json:"usage,omitempty"`
}

// FeeCalculationLine is one fee's calculation within a whole-apartment run
type FeeCalculationLine struct {
	FeeID       uint     `json:"feeId"`
	FeeTitle    string   `json:"feeTitle"`
	FeeType     string   `json:"feeType"`
	Unit        string   `json:"unit"`
	UnitPrice   float64  `json:"unitPrice"`
	Quantity    float64  `json:"quantity"`
	TotalAmount float64  `json:"totalAmount"`
	Usage       *float64 `json:"usage,omitempty"`
}

// ApartmentCalculationResponse is the payload of the calculate-all endpoint
type ApartmentCalculationResponse struct {
	ApartmentID   uint                 `json:"apartmentId"`
	ApartmentName string               `json:"apartmentName"`
	ApartmentArea float64              `json:"apartmentArea"`
	MemberCount   int                  `json:"memberCount"`
	Fees          []FeeCalculationLine `json:"fees"`
	GrandTotal    float64              `json:"grandTotal"`
	FeeCount      int                  `json:"feeCount"`
}
