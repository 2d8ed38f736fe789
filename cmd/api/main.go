package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"secret-draw-api/internal/config"
	"secret-draw-api/internal/database"
	"secret-draw-api/internal/job"
	"secret-draw-api/internal/metrics"
	"secret-draw-api/internal/repository"
	"secret-draw-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Env == "prod" || cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Draw Service",
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env),
	)

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	// Initialize database (startup survives an unreachable database; the
	// connection keeps retrying in the background)
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Hour,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(dbConfig, 5*time.Second, logger)
	} else {
		database.SetDB(db)
		logger.Info("Database connected successfully")

		if err := database.AutoMigrate(db); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		} else {
			logger.Info("Database migrations completed")
		}

		database.RegisterMetricsCallbacks(db, m)
	}

	// Initialize Redis (optional; the draw cache is disabled without it)
	if err := database.InitRedis(database.RedisConfig{
		URL:      cfg.Redis.URL,
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger); err != nil {
		logger.Warn("Failed to connect to Redis, draw cache disabled", zap.Error(err))
	}

	drawRepo := repository.NewDrawRepository(database.GetDB())

	// Start business metrics collector
	collector := metrics.NewBusinessMetricsCollector(database.GetDB(), drawRepo, m, logger)
	collector.Start()
	defer collector.Stop()

	// Schedule the retention job when a retention window is configured
	scheduler := cron.New()
	if cfg.Retention.Days > 0 {
		retentionJob := job.NewRetentionJob(drawRepo, time.Duration(cfg.Retention.Days)*24*time.Hour, logger)
		if _, err := scheduler.AddJob(cfg.Retention.Schedule, retentionJob); err != nil {
			logger.Error("Failed to schedule retention job",
				zap.String("schedule", cfg.Retention.Schedule),
				zap.Error(err))
		} else {
			scheduler.Start()
			defer scheduler.Stop()
			logger.Info("Retention job scheduled",
				zap.String("schedule", cfg.Retention.Schedule),
				zap.Int("days", cfg.Retention.Days))
		}
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:       database.GetDB(),
		Logger:   logger,
		Metrics:  m,
		CacheTTL: time.Duration(cfg.Cache.DrawTTLSeconds) * time.Second,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Draw Service started successfully",
			zap.String("address", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
