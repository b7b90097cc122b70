package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nqd2/bluemoon-admin-api/internal/middleware"
	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/models/response"
	"github.com/nqd2/bluemoon-admin-api/internal/service"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
	"github.com/nqd2/bluemoon-admin-api/pkg/utils"
)

// CalculateFeeRequest asks for a single (apartment, fee) calculation
type CalculateFeeRequest struct {
	ApartmentID uint     `json:"apartmentId" binding:"required"`
	FeeID       uint     `json:"feeId" binding:"required"`
	Usage       *float64 `json:"usage,omitempty" binding:"omitempty,gte=0"`
}

// CalculateApartmentRequest asks for an all-fees calculation for one
// apartment; UsageByFee supplies meter readings keyed by fee ID
type CalculateApartmentRequest struct {
	ApartmentID uint             `json:"apartmentId" binding:"required"`
	UsageByFee  map[uint]float64 `json:"usageByFee,omitempty"`
}

// RecordPaymentRequest is the payload for recording a completed payment
type RecordPaymentRequest struct {
	ApartmentID uint     `json:"apartmentId" binding:"required"`
	FeeID       uint     `json:"feeId" binding:"required"`
	TotalAmount float64  `json:"totalAmount" binding:"required,gt=0"`
	PayerName   string   `json:"payerName" binding:"required"`
	Usage       *float64 `json:"usage,omitempty" binding:"omitempty,gte=0"`
	UnitPrice   *float64 `json:"unitPrice,omitempty"`
	Month       int      `json:"month,omitempty" binding:"omitempty,min=1,max=12"`
	Year        int      `json:"year,omitempty" binding:"omitempty,min=2000"`
}

// UpdateTransactionRequest is a partial ledger correction
type UpdateTransactionRequest struct {
	TotalAmount *float64 `json:"totalAmount,omitempty" binding:"omitempty,gt=0"`
	PayerName   *string  `json:"payerName,omitempty"`
	Usage       *float64 `json:"usage,omitempty" binding:"omitempty,gte=0"`
	UnitPrice   *float64 `json:"unitPrice,omitempty"`
	Status      *string  `json:"status,omitempty" binding:"omitempty,oneof=Pending Completed Cancelled"`
	Date        *string  `json:"date,omitempty"`
}

// TransactionHandler handles ledger and calculation HTTP requests
type TransactionHandler struct {
	transactionService service.TransactionService
	feeService         service.FeeService
	apartmentService   service.ApartmentService
	calculator         service.CalculationService
	logger             *logger.Logger
}

// NewTransactionHandler creates a new TransactionHandler instance
func NewTransactionHandler(
	transactionService service.TransactionService,
	feeService service.FeeService,
	apartmentService service.ApartmentService,
	calculator service.CalculationService,
	logger *logger.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		feeService:         feeService,
		apartmentService:   apartmentService,
		calculator:         calculator,
		logger:             logger,
	}
}

// CalculateFee previews one fee's amount for an apartment without writing
// anything to the ledger
// @Summary Calculate a single fee for an apartment
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CalculateFeeRequest true "Calculation input"
// @Success 200 {object} utils.APIResponse{data=response.FeeCalculationResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /api/transactions/calculate [post]
func (h *TransactionHandler) CalculateFee(c *gin.Context) {
	var req CalculateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err)
		return
	}

	fee, err := h.feeService.GetFee(req.FeeID)
	if err != nil {
		if errors.Is(err, service.ErrFeeNotFound) {
			utils.NotFoundResponse(c, "Fee not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to load fee", err)
		return
	}

	apartment, err := h.apartmentService.GetApartment(req.ApartmentID)
	if err != nil {
		if errors.Is(err, service.ErrApartmentNotFound) {
			utils.NotFoundResponse(c, "Apartment not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to load apartment", err)
		return
	}

	result := h.calculator.Calculate(fee, apartment, req.Usage)
	utils.SuccessResponse(c, "", response.FeeCalculationResponse{
		Apartment:   apartment.Name,
		Fee:         fee.Title,
		UnitPrice:   fee.Amount,
		Quantity:    result.Quantity,
		TotalAmount: result.TotalAmount,
		Usage:       result.Usage,
	})
}

// CalculateApartment previews every active fee for one apartment
// @Summary Calculate all active fees for an apartment
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CalculateApartmentRequest true "Calculation input"
// @Success 200 {object} utils.APIResponse{data=response.ApartmentCalculationResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /api/transactions/calculate-all [post]
func (h *TransactionHandler) CalculateApartment(c *gin.Context) {
	var req CalculateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err)
		return
	}

	apartment, err := h.apartmentService.GetApartment(req.ApartmentID)
	if err != nil {
		if errors.Is(err, service.ErrApartmentNotFound) {
			utils.NotFoundResponse(c, "Apartment not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to load apartment", err)
		return
	}

	fees, err := h.feeService.ListFees("", true, 0)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to load fees", err)
		return
	}

	utils.SuccessResponse(c, "", h.calculator.CalculateAll(apartment, fees, req.UsageByFee))
}

// RecordPayment records a completed payment directly in the ledger
// @Summary Record a payment
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body RecordPaymentRequest true "Payment"
// @Success 201 {object} utils.APIResponse{data=models.Transaction}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/transactions [post]
func (h *TransactionHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err)
		return
	}

	transaction, err := h.transactionService.RecordPayment(service.RecordPaymentInput{
		ApartmentID: req.ApartmentID,
		FeeID:       req.FeeID,
		TotalAmount: req.TotalAmount,
		PayerName:   req.PayerName,
		Usage:       req.Usage,
		UnitPrice:   req.UnitPrice,
		Month:       req.Month,
		Year:        req.Year,
		CreatedByID: middleware.CallerID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyPaid):
			utils.ConflictResponse(c, err.Error())
		case errors.Is(err, service.ErrDuplicateBill):
			utils.ConflictResponse(c, "A transaction already exists for this apartment, fee and period")
		case errors.Is(err, service.ErrFeeNotFound):
			utils.NotFoundResponse(c, "Fee not found")
		case errors.Is(err, service.ErrApartmentNotFound):
			utils.NotFoundResponse(c, "Apartment not found")
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrPayerRequired):
			utils.BadRequestResponse(c, err.Error(), err)
		default:
			h.logger.WithError(err).Error("Failed to record payment")
			utils.InternalServerErrorResponse(c, "Failed to record payment", err)
		}
		return
	}

	utils.CreatedResponse(c, "Payment recorded successfully", transaction)
}

// UpdateTransaction applies a partial correction to a ledger entry
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse{data=models.Transaction}
// @Failure 404 {object} utils.APIResponse
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid transaction ID", err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err)
		return
	}

	input := service.UpdateTransactionInput{
		TotalAmount: req.TotalAmount,
		PayerName:   req.PayerName,
		Usage:       req.Usage,
		UnitPrice:   req.UnitPrice,
	}
	if req.Status != nil {
		status := models.TransactionStatus(*req.Status)
		input.Status = &status
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			utils.ValidationErrorResponse(c, []utils.FieldError{
				{Field: "date", Message: "must be a date in YYYY-MM-DD format"},
			})
			return
		}
		input.Date = &date
	}

	transaction, err := h.transactionService.UpdateTransaction(id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTransactionNotFound):
			utils.NotFoundResponse(c, "Transaction not found")
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrPayerRequired):
			utils.BadRequestResponse(c, err.Error(), err)
		default:
			utils.InternalServerErrorResponse(c, "Failed to update transaction", err)
		}
		return
	}

	utils.SuccessResponse(c, "Transaction updated successfully", transaction)
}

// DeleteTransaction removes a ledger entry
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid transaction ID", err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			utils.NotFoundResponse(c, "Transaction not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to delete transaction", err)
		return
	}

	utils.SuccessResponse(c, "Transaction deleted successfully", nil)
}

// GetApartmentTransactions lists one apartment's ledger history
// @Summary List an apartment's transactions
// @Tags transactions
// @Produce json
// @Param id path int true "Apartment ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Transaction}
// @Router /api/apartments/{id}/transactions [get]
func (h *TransactionHandler) GetApartmentTransactions(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid apartment ID", err)
		return
	}

	transactions, err := h.transactionService.GetApartmentTransactions(id)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to load transactions", err)
		return
	}

	utils.ListResponse(c, len(transactions), transactions)
}

// GetRevenueSummary reports completed revenue totals per apartment
// @Summary Revenue summary per apartment
// @Tags transactions
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response.ApartmentRevenueSummary}
// @Router /api/transactions/revenue-summary [get]
func (h *TransactionHandler) GetRevenueSummary(c *gin.Context) {
	summaries, err := h.transactionService.GetApartmentsRevenueSummary()
	if err != nil {
		h.logger.WithError(err).Error("Failed to build revenue summary")
		utils.InternalServerErrorResponse(c, "Failed to build revenue summary", err)
		return
	}

	utils.ListResponse(c, len(summaries), summaries)
}

// ExportTransactions streams the filtered ledger as an xlsx download
// @Summary Export transactions to Excel
// @Tags transactions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param month query int false "Month filter (1-12)"
// @Param year query int false "Year filter"
// @Param status query string false "Status filter" Enums(Pending, Completed, Cancelled)
// @Success 200 {file} binary
// @Router /api/transactions/export [get]
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	var month, year *int
	if raw := c.Query("month"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 || value > 12 {
			utils.BadRequestResponse(c, "Invalid month filter", err)
			return
		}
		month = &value
	}
	if raw := c.Query("year"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid year filter", err)
			return
		}
		year = &value
	}

	content, filename, err := h.transactionService.ExportTransactionsToExcel(month, year, c.Query("status"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to export transactions")
		utils.InternalServerErrorResponse(c, "Failed to export transactions", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Transfer-Encoding", "binary")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
