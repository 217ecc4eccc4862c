package main

import (
	"net/http"

	"github.com/ahmadhamza100/inventory-management-dashboard/internal/events"
	"github.com/ahmadhamza100/inventory-management-dashboard/internal/handler"
	"github.com/ahmadhamza100/inventory-management-dashboard/internal/ledger"
	mid "github.com/ahmadhamza100/inventory-management-dashboard/internal/middleware"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/config"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/database"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/jwtutil"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/logger"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/redisx"
	"github.com/ahmadhamza100/inventory-management-dashboard/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("backoffice")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting backoffice API", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Optional Redis for rate limiting
	redisx.Init(appConfig, log)

	// Optional Kafka invoice event stream
	var publisher *events.Publisher
	if len(appConfig.Kafka.Brokers) > 0 {
		publisher = events.NewPublisher(appConfig.Kafka.Brokers, appConfig.Kafka.Topic, appConfig.ServiceName, log)
		defer publisher.Close()
		log.Info("Invoice event publisher initialized",
			zap.Strings("brokers", appConfig.Kafka.Brokers),
			zap.String("topic", appConfig.Kafka.Topic))
	}

	// Wire the ledger and its handlers
	ledgerSvc := ledger.NewService(database.GetDB(), publisher)
	invoiceHandler := handler.NewInvoiceHandler(ledgerSvc)
	analyticsHandler := handler.NewAnalyticsHandler(ledgerSvc)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Auth routes (rate limited when Redis is configured)
	auth := e.Group("/auth", mid.RateLimiter())
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	e.GET("/auth/me", handler.Me, mid.AuthMiddleware)

	// Tenant-scoped API routes
	api := e.Group("/api", mid.AuthMiddleware)

	api.GET("/products", handler.ListProducts)
	api.POST("/products", handler.CreateProduct)
	api.PATCH("/products/:id", handler.UpdateProduct)
	api.DELETE("/products/:id", handler.DeleteProduct)

	api.GET("/customers", handler.ListCustomers)
	api.POST("/customers", handler.CreateCustomer)
	api.PATCH("/customers/:id", handler.UpdateCustomer)
	api.DELETE("/customers/:id", handler.DeleteCustomer)

	api.GET("/invoices", invoiceHandler.List)
	api.GET("/invoices/export", invoiceHandler.Export)
	api.POST("/invoices", invoiceHandler.Create)
	api.PATCH("/invoices/:id", invoiceHandler.Update)
	api.DELETE("/invoices/:id", invoiceHandler.Delete)

	api.GET("/transactions", handler.ListTransactions)
	api.POST("/transactions", handler.CreateTransaction)
	api.PATCH("/transactions/:id", handler.UpdateTransaction)
	api.DELETE("/transactions/:id", handler.DeleteTransaction)

	api.GET("/analytics/cards", analyticsHandler.Cards)
	api.GET("/analytics/monthly-performance", analyticsHandler.MonthlyPerformance)
	api.GET("/analytics/payment-status", analyticsHandler.PaymentStatus)
	api.GET("/analytics/top-products", analyticsHandler.TopProducts)

	// User management is admin only
	users := api.Group("/users", mid.AdminMiddleware)
	users.GET("", handler.ListUsers)
	users.POST("", handler.CreateUser)
	users.PATCH("/:id", handler.UpdateUser)
	users.POST("/:id/ban", handler.BanUser)
	users.POST("/:id/unban", handler.UnbanUser)
	users.POST("/:id/password", handler.ChangePassword)
	users.DELETE("/:id", handler.DeleteUser)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server error", zap.Error(err))
	}
}
