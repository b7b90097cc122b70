package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/models/response"
	"github.com/nqd2/bluemoon-admin-api/internal/repository"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
)

// RecordPaymentInput carries a direct payment submitted by an accountant
type RecordPaymentInput struct {
	ApartmentID uint
	FeeID       uint
	TotalAmount float64
	PayerName   string
	Usage       *float64
	UnitPrice   *float64
	Month       int
	Year        int
	CreatedByID *uint
}

// UpdateTransactionInput carries a partial ledger update; nil fields are
// left untouched
type UpdateTransactionInput struct {
	TotalAmount *float64
	PayerName   *string
	Usage       *float64
	UnitPrice   *float64
	Status      *models.TransactionStatus
	Date        *time.Time
}

// TransactionService defines the interface for ledger operations
type TransactionService interface {
	RecordPayment(input RecordPaymentInput) (*models.Transaction, error)
	UpdateTransaction(id uint, input UpdateTransactionInput) (*models.Transaction, error)
	DeleteTransaction(id uint) error
	GetApartmentTransactions(apartmentID uint) ([]*models.Transaction, error)
	GetApartmentsRevenueSummary() ([]*response.ApartmentRevenueSummary, error)
	ExportTransactionsToExcel(month, year *int, status string) ([]byte, string, error)
}

// transactionService implements TransactionService
type transactionService struct {
	transactionRepo repository.TransactionRepository
	feeRepo         repository.FeeRepository
	apartmentRepo   repository.ApartmentRepository
	dashboardRepo   repository.DashboardRepository
	logger          *logger.Logger
}

// NewTransactionService creates a new instance of TransactionService
func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	feeRepo repository.FeeRepository,
	apartmentRepo repository.ApartmentRepository,
	dashboardRepo repository.DashboardRepository,
	logger *logger.Logger,
) TransactionService {
	return &transactionService{
		transactionRepo: transactionRepo,
		feeRepo:         feeRepo,
		apartmentRepo:   apartmentRepo,
		dashboardRepo:   dashboardRepo,
		logger:          logger,
	}
}

// RecordPayment validates and persists a Completed transaction. Service-type
// fees allow at most one transaction per (apartment, fee) regardless of
// period; Contribution fees are exempt and may be paid repeatedly. The
// period defaults to the payment date when not supplied.
func (s *transactionService) RecordPayment(input RecordPaymentInput) (*models.Transaction, error) {
	if input.TotalAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	if input.PayerName == "" {
		return nil, ErrPayerRequired
	}

	fee, err := s.feeRepo.GetByID(input.FeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeNotFound
		}
		return nil, err
	}

	if _, err := s.apartmentRepo.GetByID(input.ApartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}

	// Service fees track a single mandatory obligation: one payment per
	// apartment, independent of period. Contribution fees are voluntary and
	// repeatable; Utility fees fall back to the per-period index below.
	if fee.Type == models.FeeTypeService {
		existing, err := s.transactionRepo.FindByApartmentAndFee(input.ApartmentID, input.FeeID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrAlreadyPaid
		}
	}

	now := time.Now()
	month, year := input.Month, input.Year
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	payer := input.PayerName
	transaction := &models.Transaction{
		ReceiptNo:   uuid.New().String(),
		ApartmentID: input.ApartmentID,
		FeeID:       input.FeeID,
		Month:       month,
		Year:        year,
		TotalAmount: input.TotalAmount,
		Usage:       input.Usage,
		UnitPrice:   input.UnitPrice,
		Status:      models.TransactionCompleted,
		PayerName:   &payer,
		CreatedByID: input.CreatedByID,
		Date:        now,
	}
	if input.Usage != nil {
		transaction.Quantity = *input.Usage
	}

	if err := s.transactionRepo.Create(transaction); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateBill
		}
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"apartment_id": input.ApartmentID,
		"fee_id":       input.FeeID,
		"total_amount": input.TotalAmount,
		"payer":        input.PayerName,
	}).Info("Payment recorded")

	return transaction, nil
}

// UpdateTransaction applies a partial update to a ledger record, e.g. the
// explicit Pending to Completed transition once a bill is paid
func (s *transactionService) UpdateTransaction(id uint, input UpdateTransactionInput) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	if input.TotalAmount != nil {
		if *input.TotalAmount <= 0 {
			return nil, ErrInvalidAmount
		}
		transaction.TotalAmount = *input.TotalAmount
	}
	if input.PayerName != nil {
		if *input.PayerName == "" {
			return nil, ErrPayerRequired
		}
		transaction.PayerName = input.PayerName
	}
	if input.Usage != nil {
		transaction.Usage = input.Usage
		transaction.Quantity = *input.Usage
	}
	if input.UnitPrice != nil {
		transaction.UnitPrice = input.UnitPrice
	}
	if input.Status != nil {
		if *input.Status == models.TransactionCompleted && (transaction.PayerName == nil || *transaction.PayerName == "") {
			return nil, ErrPayerRequired
		}
		transaction.Status = *input.Status
	}
	if input.Date != nil {
		transaction.Date = *input.Date
	}

	if err := s.transactionRepo.Update(transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// DeleteTransaction removes a ledger record
func (s *transactionService) DeleteTransaction(id uint) error {
	if _, err := s.transactionRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}

	return s.transactionRepo.Delete(id)
}

// GetApartmentTransactions lists an apartment's transactions newest first
func (s *transactionService) GetApartmentTransactions(apartmentID uint) ([]*models.Transaction, error) {
	return s.transactionRepo.ListByApartment(apartmentID)
}

// GetApartmentsRevenueSummary aggregates Completed revenue per apartment
func (s *transactionService) GetApartmentsRevenueSummary() ([]*response.ApartmentRevenueSummary, error) {
	return s.dashboardRepo.ApartmentRevenueSummaries()
}

// ExportTransactionsToExcel renders the filtered ledger to an xlsx workbook
func (s *transactionService) ExportTransactionsToExcel(month, year *int, status string) ([]byte, string, error) {
	transactions, err := s.transactionRepo.ListForExport(month, year, status)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get transactions: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close excel file")
		}
	}()

	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"No", "Apartment", "Building", "Fee", "Type", "Month", "Year", "Quantity", "Unit Price", "Total Amount", "Status", "Payer", "Date"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "M1", headerStyle)
	}

	for i, t := range transactions {
		row := i + 2

		apartmentName, building := "", ""
		if t.Apartment != nil {
			apartmentName = t.Apartment.Name
			if t.Apartment.Building != nil {
				building = *t.Apartment.Building
			}
		}
		feeTitle, feeType := "", ""
		if t.Fee != nil {
			feeTitle = t.Fee.Title
			feeType = string(t.Fee.Type)
		}
		payer := ""
		if t.PayerName != nil {
			payer = *t.PayerName
		}
		unitPrice := 0.0
		if t.UnitPrice != nil {
			unitPrice = *t.UnitPrice
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), apartmentName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), building)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), feeTitle)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), feeType)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), t.Month)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), t.Year)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), t.Quantity)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), unitPrice)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), t.TotalAmount)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), string(t.Status))
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), payer)
		f.SetCellValue(sheetName, fmt.Sprintf("M%d", row), t.Date.Format("2006-01-02"))
	}

	for i := 1; i <= len(headers); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, col, col, 15)
	}

	if f.GetSheetName(0) == "Sheet1" && sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("transactions_export_%s.xlsx", timestamp)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write excel file: %w", err)
	}

	return buffer.Bytes(), filename, nil
}
