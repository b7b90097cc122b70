package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/nqd2/bluemoon-admin-api/internal/auth"
	"github.com/nqd2/bluemoon-admin-api/internal/middleware"
	"github.com/nqd2/bluemoon-admin-api/internal/service"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
)

// Routes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	userService service.UserService,
	feeService service.FeeService,
	apartmentService service.ApartmentService,
	residentService service.ResidentService,
	transactionService service.TransactionService,
	billingService service.BillingService,
	dashboardService service.DashboardService,
	calculator service.CalculationService,
	logger *logger.Logger,
) {
	// Initialize handlers
	authHandler := NewAuthHandler(userService, logger)
	feeHandler := NewFeeHandler(feeService, logger)
	apartmentHandler := NewApartmentHandler(apartmentService, logger)
	residentHandler := NewResidentHandler(residentService, logger)
	transactionHandler := NewTransactionHandler(transactionService, feeService, apartmentService, calculator, logger)
	billingHandler := NewBillingHandler(billingService, logger)
	dashboardHandler := NewDashboardHandler(dashboardService, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", HealthCheck)

		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/register",
				middleware.AuthRequired(jwtSecret),
				middleware.RequireAction(auth.ActionUserManage),
				authHandler.Register)
			authRoutes.GET("/me", middleware.AuthRequired(jwtSecret), authHandler.Me)
		}

		// Everything below requires a valid token
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(jwtSecret))

		// Fee catalog routes
		fees := protected.Group("/fees")
		{
			fees.GET("", feeHandler.GetFees)
			fees.GET("/:id", feeHandler.GetFee)
			fees.GET("/:id/payment-status", feeHandler.GetFeePaymentStatus)
			fees.POST("", middleware.RequireAction(auth.ActionFeeWrite), feeHandler.CreateFee)
			fees.PUT("/:id", middleware.RequireAction(auth.ActionFeeWrite), feeHandler.UpdateFee)
			fees.DELETE("/:id", middleware.RequireAction(auth.ActionFeeWrite), feeHandler.DeleteFee)
		}

		// Apartment routes
		apartments := protected.Group("/apartments")
		{
			apartments.GET("", apartmentHandler.GetApartments)
			apartments.GET("/:id", apartmentHandler.GetApartment)
			apartments.GET("/:id/transactions", transactionHandler.GetApartmentTransactions)
			apartments.POST("", middleware.RequireAction(auth.ActionRegistryWrite), apartmentHandler.CreateApartment)
			apartments.PUT("/:id", middleware.RequireAction(auth.ActionRegistryWrite), apartmentHandler.UpdateApartment)
			apartments.DELETE("/:id", middleware.RequireAction(auth.ActionRegistryWrite), apartmentHandler.DeleteApartment)
		}

		// Resident routes
		residents := protected.Group("/residents")
		{
			residents.GET("", residentHandler.GetResidents)
			residents.GET("/:id", residentHandler.GetResident)
			residents.POST("", middleware.RequireAction(auth.ActionRegistryWrite), residentHandler.CreateResident)
			residents.PUT("/:id", middleware.RequireAction(auth.ActionRegistryWrite), residentHandler.UpdateResident)
			residents.DELETE("/:id", middleware.RequireAction(auth.ActionRegistryWrite), residentHandler.DeleteResident)
		}

		// Transaction ledger routes
		transactions := protected.Group("/transactions")
		{
			transactions.POST("/calculate", transactionHandler.CalculateFee)
			transactions.POST("/calculate-all", transactionHandler.CalculateApartment)
			transactions.GET("/revenue-summary", middleware.RequireAction(auth.ActionReportView), transactionHandler.GetRevenueSummary)
			transactions.GET("/export", middleware.RequireAction(auth.ActionReportView), transactionHandler.ExportTransactions)
			transactions.POST("", middleware.RequireAction(auth.ActionPaymentRecord), transactionHandler.RecordPayment)
			transactions.PUT("/:id", middleware.RequireAction(auth.ActionLedgerWrite), transactionHandler.UpdateTransaction)
			transactions.DELETE("/:id", middleware.RequireAction(auth.ActionLedgerWrite), transactionHandler.DeleteTransaction)
		}

		// Billing batch routes
		billing := protected.Group("/billing")
		{
			billing.POST("/generate-bills", middleware.RequireAction(auth.ActionBillingGenerate), billingHandler.GenerateBills)
		}

		// Dashboard routes
		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/stats", middleware.RequireAction(auth.ActionReportView), dashboardHandler.GetStats)
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Bluemoon Admin API",
	})
}
