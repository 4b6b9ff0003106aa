package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/billing/backend/internal/application/billing"
	identityapp "github.com/billing/backend/internal/application/identity"
	partnerapp "github.com/billing/backend/internal/application/partner"
	"github.com/billing/backend/internal/infrastructure/auth"
	"github.com/billing/backend/internal/infrastructure/config"
	applogger "github.com/billing/backend/internal/infrastructure/logger"
	"github.com/billing/backend/internal/infrastructure/persistence"
	"github.com/billing/backend/internal/infrastructure/telemetry"
	"github.com/billing/backend/internal/interfaces/http/handler"
	"github.com/billing/backend/internal/interfaces/http/middleware"
	"github.com/billing/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

//	@title			Billing Backend API
//	@version		1.0
//	@description	Small-business billing backend: customers, properties, invoices, payments and statements.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = applogger.Sync(log)
	}()

	log.Info("Starting Billing Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize database connection
	gormLog := applogger.NewGormLogger(log, applogger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register query tracing on the GORM connection
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Transaction scope for payment application; payments and invoice
	// status updates commit atomically
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Token blacklist backed by Redis, in-memory fallback for local runs
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected")
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	customerService := partnerapp.NewCustomerService(customerRepo, log)
	propertyService := partnerapp.NewPropertyService(propertyRepo, customerRepo, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, paymentRepo, customerRepo, propertyRepo, txScope, log)
	paymentService := billingapp.NewPaymentService(txScope, log)
	statementService := billingapp.NewStatementService(invoiceRepo, customerRepo, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	customerHandler := handler.NewCustomerHandler(customerService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reportHandler := handler.NewReportHandler(statementService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, recovery, logging, tracing,
	// security headers, CORS, then JWT authentication
	engine.Use(middleware.RequestID())
	engine.Use(applogger.Recovery(log))
	engine.Use(applogger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// JWT authentication for everything except health checks and the
	// public auth endpoints
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)

	customerRoutes := router.NewDomainGroup("partner", "/customers")
	customerRoutes.POST("", customerHandler.Create)
	customerRoutes.GET("", customerHandler.List)
	customerRoutes.GET("/:id", customerHandler.GetByID)
	customerRoutes.PUT("/:id", customerHandler.Update)
	customerRoutes.DELETE("/:id", middleware.RequireAdmin(), customerHandler.Delete)

	propertyRoutes := router.NewDomainGroup("partner", "/properties")
	propertyRoutes.POST("", propertyHandler.Create)
	propertyRoutes.GET("", propertyHandler.List)
	propertyRoutes.GET("/:id", propertyHandler.GetByID)
	propertyRoutes.PUT("/:id", propertyHandler.Update)
	propertyRoutes.DELETE("/:id", middleware.RequireAdmin(), propertyHandler.Delete)

	invoiceRoutes := router.NewDomainGroup("billing", "/invoices")
	invoiceRoutes.POST("", invoiceHandler.Create)
	invoiceRoutes.GET("", invoiceHandler.List)
	invoiceRoutes.GET("/:id", invoiceHandler.GetByID)
	invoiceRoutes.POST("/:id/void", invoiceHandler.Void)
	// Payment application mutates invoice balances, admin only
	invoiceRoutes.POST("/:id/payments", middleware.RequireAdmin(), paymentHandler.Apply)
	invoiceRoutes.GET("/:id/payments", paymentHandler.List)

	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/customers/:id/statement", reportHandler.CustomerStatement)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(authRoutes).
		Register(customerRoutes).
		Register(propertyRoutes).
		Register(invoiceRoutes).
		Register(reportRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := applogger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
