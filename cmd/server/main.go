package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	receivingapp "github.com/omnideploy/backend/internal/application/receiving"
	"github.com/omnideploy/backend/internal/infrastructure/cache"
	"github.com/omnideploy/backend/internal/infrastructure/config"
	"github.com/omnideploy/backend/internal/infrastructure/event"
	"github.com/omnideploy/backend/internal/infrastructure/ingest"
	"github.com/omnideploy/backend/internal/infrastructure/labels"
	"github.com/omnideploy/backend/internal/infrastructure/logger"
	"github.com/omnideploy/backend/internal/infrastructure/persistence"
	"github.com/omnideploy/backend/internal/infrastructure/storage"
	"github.com/omnideploy/backend/internal/interfaces/http/handler"
	"github.com/omnideploy/backend/internal/interfaces/http/middleware"
	"github.com/omnideploy/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting OmniDeploy receiving backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
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

	// Initialize repositories
	arrivalRepo := persistence.NewGormArrivalRepository(db.DB)
	itemRepo := persistence.NewGormTruckItemRepository(db.DB)
	qualityRepo := persistence.NewGormQualityCheckRepository(db.DB)
	slotRepo := persistence.NewGormPutawaySlotRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize workflow service
	workflowService := receivingapp.NewWorkflowService(
		arrivalRepo, itemRepo, qualityRepo, slotRepo, inventoryRepo, log,
	)
	workflowService.SetEventPublisher(eventBus)
	if cfg.Receiving.WarehouseSlotCheck {
		workflowService.EnableWarehouseSlotCheck()
		log.Info("Warehouse-wide slot check enabled")
	}

	// Idempotency store: Redis when enabled, in-memory otherwise
	workflowService.SetIdempotencyTTL(cfg.Receiving.IdempotencyTTL)
	if cfg.Receiving.IdempotencyEnabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				log.Error("Error closing Redis idempotency store", zap.Error(err))
			}
		}()
		workflowService.SetIdempotencyStore(redisStore)
		log.Info("Redis idempotency store enabled")
	} else {
		memStore := cache.NewInMemoryIdempotencyStore()
		defer func() {
			_ = memStore.Close()
		}()
		workflowService.SetIdempotencyStore(memStore)
	}

	// Damage image service is optional; it needs object storage credentials
	var damageImageService *receivingapp.DamageImageService
	if cfg.Storage.Bucket != "" {
		objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := objectStorage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		damageImageService = receivingapp.NewDamageImageService(objectStorage)
		log.Info("Damage image storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		log.Warn("Object storage not configured; damage image endpoints disabled")
	}

	// Initialize HTTP handlers
	receivingHandler := handler.NewReceivingHandler(
		workflowService,
		damageImageService,
		ingest.NewCSVNormalizer(),
		labels.NewRenderer(),
	)

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
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
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(receivingHandler)
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
