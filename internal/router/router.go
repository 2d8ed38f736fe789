package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"secret-draw-api/internal/handler"
	"secret-draw-api/internal/matching"
	"secret-draw-api/internal/metrics"
	"secret-draw-api/internal/middleware"
	"secret-draw-api/internal/repository"
	"secret-draw-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	CacheTTL time.Duration
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS())
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "draw-service"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "draw-service"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "draw-service"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "draw-service"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "draw-service"})
	})

	// Initialize repositories
	drawRepo := repository.NewDrawRepository(cfg.DB)

	// Initialize websocket hub
	hub := handler.NewEventHub(cfg.Logger)

	// Initialize services
	drawService := service.NewDrawService(drawRepo, matching.NewGenerator(nil), hub, cfg.Metrics, cfg.CacheTTL, cfg.Logger)

	// Initialize handlers
	drawHandler := handler.NewDrawHandler(drawService, cfg.Logger)
	eventsHandler := handler.NewEventsHandler(hub, cfg.Logger)

	// ============================================================
	// Draw routes (public by design, the draw id is the capability)
	// ============================================================
	draws := r.Group("/api/draws")
	{
		draws.POST("", drawHandler.CreateDraw)
		draws.GET("/:drawId", drawHandler.GetDraw)
		draws.POST("/:drawId/redeem", drawHandler.Redeem)
		draws.GET("/:drawId/events", eventsHandler.HandleEvents)
	}

	return r
}
