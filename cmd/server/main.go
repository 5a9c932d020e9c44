package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ledgerapp "github.com/mwshop/backend/internal/application/ledger"
	partnerapp "github.com/mwshop/backend/internal/application/partner"
	"github.com/mwshop/backend/internal/domain/partner"
	"github.com/mwshop/backend/internal/infrastructure/cache"
	"github.com/mwshop/backend/internal/infrastructure/config"
	"github.com/mwshop/backend/internal/infrastructure/event"
	"github.com/mwshop/backend/internal/infrastructure/logger"
	"github.com/mwshop/backend/internal/infrastructure/persistence"
	"github.com/mwshop/backend/internal/interfaces/http/handler"
	"github.com/mwshop/backend/internal/interfaces/http/middleware"
	"github.com/mwshop/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

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

	log.Info("Starting stock ledger service",
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
	log.Info("Database connected")

	// Repositories
	mutationRepo := persistence.NewGormMutationRepository(db.DB)
	journalRepo := persistence.NewGormJournalRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	adminRepo := persistence.NewGormAdminRepository(db.DB)

	// Transaction scope shared by the ledger workflows
	scope := persistence.NewGormTransactionScope(db.DB)

	// Event bus for post-commit integration
	eventBus := event.NewInMemoryEventBus(log)

	// Stock cache (redis, in-memory, or disabled)
	cacheFactory := cache.NewStockCacheFactory(cfg.Redis, cfg.Cache, log)
	stockCache, err := cacheFactory.Create()
	if err != nil {
		log.Fatal("Failed to create stock cache", zap.Error(err))
	}

	// Application services
	stockService := ledgerapp.NewStockQueryService(mutationRepo, journalRepo, warehouseRepo, productRepo)
	transferService := ledgerapp.NewTransferService(scope, adminRepo, productRepo)
	transferService.SetEventPublisher(eventBus)
	replenishmentService := ledgerapp.NewReplenishmentService(scope, partner.NewWarehouseLocator())
	replenishmentService.SetEventPublisher(eventBus)
	warehouseService := partnerapp.NewWarehouseService(warehouseRepo)

	if stockCache != nil {
		stockService.SetStockCache(stockCache)
		invalidator := ledgerapp.NewStockCacheInvalidator(stockCache, log)
		eventBus.Subscribe(invalidator)
		log.Info("Stock cache enabled",
			zap.String("backend", cfg.Cache.Backend),
			zap.Duration("ttl", cfg.Cache.TTL),
		)
	}

	// HTTP handlers
	mutationHandler := handler.NewMutationHandler(stockService, transferService)
	orderHandler := handler.NewOrderHandler(replenishmentService)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	systemHandler := handler.NewSystemHandler(db, version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler).
		Register(mutationHandler).
		Register(orderHandler).
		Register(warehouseHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt and drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
