package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"secret-draw-api/internal/repository"
)

// BusinessMetricsCollector refreshes the draw gauges periodically
type BusinessMetricsCollector struct {
	db       *gorm.DB
	drawRepo repository.DrawRepository
	metrics  *Metrics
	logger   *zap.Logger
	ticker   *time.Ticker
	done     chan bool
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, drawRepo repository.DrawRepository, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:       db,
		drawRepo: drawRepo,
		metrics:  metrics,
		logger:   logger,
		ticker:   time.NewTicker(60 * time.Second),
		done:     make(chan bool),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		c.collect()

		for {
			select {
			case <-c.ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	c.ticker.Stop()
	c.done <- true
}

// collect gathers business metrics and connection pool stats
func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if count, err := c.drawRepo.CountDraws(ctx); err != nil {
		c.logger.Error("Failed to count draws", zap.Error(err))
	} else {
		c.metrics.SetDrawsTotal(count)
	}

	if count, err := c.drawRepo.CountRedemptions(ctx); err != nil {
		c.logger.Error("Failed to count redemptions", zap.Error(err))
	} else {
		c.metrics.SetRedeemedParticipants(count)
	}

	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			c.metrics.UpdateDBStats(sqlDB.Stats())
		}
	}
}
