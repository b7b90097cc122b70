package service

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers. Conflict errors
// carry the human-readable reason the front-end displays.
var (
	ErrFeeNotFound         = errors.New("fee not found")
	ErrApartmentNotFound   = errors.New("apartment not found")
	ErrResidentNotFound    = errors.New("resident not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUserNotFound        = errors.New("user not found")

	ErrAlreadyPaid            = errors.New("fee already paid for this apartment")
	ErrDuplicateBill          = errors.New("bill already exists for this period")
	ErrDuplicateApartmentName = errors.New("apartment name already exists in the system")
	ErrDuplicateIdentityCard  = errors.New("identity card already registered")
	ErrEmailTaken             = errors.New("email already registered")

	ErrInvalidAmount      = errors.New("total amount must be greater than zero")
	ErrPayerRequired      = errors.New("payer name is required")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
