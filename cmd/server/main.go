package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nqd2/bluemoon-admin-api/docs"
	"github.com/nqd2/bluemoon-admin-api/internal/config"
	"github.com/nqd2/bluemoon-admin-api/internal/database"
	"github.com/nqd2/bluemoon-admin-api/internal/handler"
	"github.com/nqd2/bluemoon-admin-api/internal/middleware"
	"github.com/nqd2/bluemoon-admin-api/internal/repository"
	"github.com/nqd2/bluemoon-admin-api/internal/scheduler"
	"github.com/nqd2/bluemoon-admin-api/internal/service"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
)

// @title Bluemoon Admin API
// @version 1.0
// @description RESTful API for apartment complex administration: fee catalog, resident registry, billing and ledger
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "Bluemoon Admin API"
	docs.SwaggerInfo.Description = "RESTful API for apartment complex administration"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting Bluemoon Admin API...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to database")
	}
	appLogger.Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithError(err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	feeRepo := repository.NewFeeRepository(db.DB)
	apartmentRepo := repository.NewApartmentRepository(db.DB)
	residentRepo := repository.NewResidentRepository(db.DB)
	transactionRepo := repository.NewTransactionRepository(db.DB)
	dashboardRepo := repository.NewDashboardRepository(db.DB)
	schedulerLogRepo := repository.NewSchedulerLogRepository(db.DB)

	// Initialize services
	userService := service.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpiryHours, appLogger)
	feeService := service.NewFeeService(feeRepo, apartmentRepo, transactionRepo, appLogger)
	apartmentService := service.NewApartmentService(apartmentRepo, residentRepo, appLogger)
	residentService := service.NewResidentService(residentRepo, apartmentRepo, appLogger)
	calculator := service.NewCalculationService()
	billingService := service.NewBillingService(feeRepo, apartmentRepo, transactionRepo, calculator, appLogger)
	transactionService := service.NewTransactionService(transactionRepo, feeRepo, apartmentRepo, dashboardRepo, appLogger)
	dashboardService := service.NewDashboardService(dashboardRepo, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())

	// Setup routes
	handler.SetupRoutes(
		router,
		cfg.JWT.Secret,
		userService,
		feeService,
		apartmentService,
		residentService,
		transactionService,
		billingService,
		dashboardService,
		calculator,
		appLogger,
	)

	// Start the monthly billing scheduler
	billingScheduler := scheduler.NewBillingScheduler(billingService, schedulerLogRepo, appLogger, cfg.Scheduler.BillingCronExpression)
	if err := billingScheduler.Start(); err != nil {
		appLogger.WithError(err).Fatal("Failed to start billing scheduler")
	}

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	appLogger.WithField("port", cfg.Server.Port).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop the scheduler before refusing new requests
	billingScheduler.Stop()

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	// Close database connection
	if err := db.Close(); err != nil {
		appLogger.WithError(err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}
