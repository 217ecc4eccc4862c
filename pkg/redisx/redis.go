package redisx

import (
	"context"

	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var client *redis.Client

// Init connects to Redis when an address is configured. A failed or absent
// connection leaves the client nil, which disables rate limiting rather
// than failing startup.
func Init(cfg *config.Config, log *zap.Logger) {
	if cfg.Redis.Addr == "" {
		log.Info("Redis not configured, rate limiting disabled")
		return
	}

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := c.Ping(context.Background()).Err(); err != nil {
		log.Warn("Failed to connect to Redis, rate limiting disabled",
			zap.String("addr", cfg.Redis.Addr),
			zap.Error(err))
		return
	}

	client = c
	log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr))
}

// GetClient returns the Redis client, or nil when Redis is unavailable
func GetClient() *redis.Client {
	return client
}
