package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/pos/backend/internal/application/catalog"
	documentapp "github.com/pos/backend/internal/application/document"
	financeapp "github.com/pos/backend/internal/application/finance"
	inventoryapp "github.com/pos/backend/internal/application/inventory"
	notificationapp "github.com/pos/backend/internal/application/notification"
	partnerapp "github.com/pos/backend/internal/application/partner"
	reportapp "github.com/pos/backend/internal/application/report"
	tradeapp "github.com/pos/backend/internal/application/trade"
	"github.com/pos/backend/internal/infrastructure/auth"
	"github.com/pos/backend/internal/infrastructure/cache"
	"github.com/pos/backend/internal/infrastructure/config"
	"github.com/pos/backend/internal/infrastructure/logger"
	"github.com/pos/backend/internal/infrastructure/notify"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/internal/infrastructure/printing"
	"github.com/pos/backend/internal/infrastructure/storage"
	"github.com/pos/backend/internal/interfaces/http/handler"
	"github.com/pos/backend/internal/interfaces/http/middleware"
	"github.com/pos/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
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

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	storeProductRepo := persistence.NewGormStoreProductRepository(db.DB)
	storeHistoryRepo := persistence.NewGormStoreHistoryRepository(db.DB)
	txnRepo := persistence.NewGormTransactionRepository(db.DB)
	debtRepo := persistence.NewGormDebtRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Analytics cache, Redis when configured, in-memory otherwise
	reportCache, err := cache.NewReportCache(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory analytics cache", zap.Error(err))
	}
	defer func() {
		if err := reportCache.Close(); err != nil {
			log.Error("Error closing report cache", zap.Error(err))
		}
	}()

	// WhatsApp sender for debt reminders
	var sender notify.Sender
	if cfg.WhatsApp.Enabled {
		sender = notify.NewTwilioWhatsAppSender(cfg.WhatsApp, log)
		log.Info("WhatsApp reminders enabled", zap.String("from", cfg.WhatsApp.FromNumber))
	} else {
		sender = notify.NewNoopSender(log)
	}

	// PDF rendering
	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Printing.Timeout,
		ChromePath:     cfg.Printing.ChromePath,
		NoSandbox:      true,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()
	templateEngine := printing.NewTemplateEngine()
	templateStore := printing.NewTemplateStore(cfg.Printing.TemplateDir)

	// Document archive, S3 when configured
	var archive storage.DocumentArchive
	if cfg.Storage.Enabled {
		s3Archive, err := storage.NewS3DocumentArchive(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize document archive", zap.Error(err))
		}
		archive = s3Archive
		log.Info("Document archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		archive = storage.NewNoopArchive(log)
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo)
	customerService := partnerapp.NewCustomerService(customerRepo, txnRepo, debtRepo, txManager)
	storeService := inventoryapp.NewStoreService(storeProductRepo, storeHistoryRepo, txManager)
	checkoutService := tradeapp.NewCheckoutService(txnRepo, productRepo, customerRepo, debtRepo, txManager)
	debtService := financeapp.NewDebtService(debtRepo, txnRepo, customerRepo, txManager)
	reportService := reportapp.NewReportService(txnRepo, reportCache, log)
	reminderService := notificationapp.NewReminderService(customerRepo, sender, log)
	documentService := documentapp.NewDocumentService(
		txnRepo, customerRepo, debtRepo, storeHistoryRepo,
		renderer, templateEngine, templateStore, archive,
		cfg.App.ShopName, log,
	)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Gin engine and middleware stack
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	// Health check endpoint, outside API versioning and authentication
	engine.GET("/health", healthHandler(db))

	// API routes behind JWT authentication
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Logger:     log,
	}))

	r.Register(handler.NewProductHandler(productService))
	r.Register(handler.NewCustomerHandler(customerService, checkoutService))
	r.Register(handler.NewStoreHandler(storeService))
	r.Register(handler.NewTransactionHandler(checkoutService))
	r.Register(handler.NewDebtHandler(debtService))
	r.Register(handler.NewReminderHandler(reminderService, debtService))
	r.Register(handler.NewReportHandler(reportService))
	r.Register(handler.NewDocumentHandler(documentService))
	r.Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
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
