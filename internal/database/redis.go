package database

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var redisClient *redis.Client

// RedisConfig holds the Redis connection settings
type RedisConfig struct {
	URL      string
	Addr     string
	Password string
	DB       int
}

// InitRedis establishes the Redis connection used for the draw read cache.
// A redis:// URL takes precedence over discrete settings.
func InitRedis(cfg RedisConfig, log *zap.Logger) error {
	var client *redis.Client

	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return err
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	redisClient = client
	log.Info("Redis connection established successfully",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
	)
	return nil
}

// GetRedis returns the Redis client, or nil when Redis is not configured.
// Callers treat a nil client as "cache disabled" so tests run without Redis.
func GetRedis() *redis.Client {
	return redisClient
}
