package middleware

import (
	"net/http"
	"time"

	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/logger"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/redisx"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	rateLimitPeriod = 1 * time.Minute
	rateLimitCount  = 5
)

// RateLimiter applies a fixed-window per-IP limit backed by Redis. With no
// Redis client configured, or when Redis is down, requests pass through.
func RateLimiter() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			client := redisx.GetClient()
			if client == nil {
				return next(c)
			}

			key := "rate_limit:" + c.RealIP()
			ctx := c.Request().Context()

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				logger.FromEcho(c).Warn("Rate limiter unavailable", zap.Error(err))
				return next(c)
			}

			// First hit in the window starts the expiry clock.
			if count == 1 {
				client.Expire(ctx, key, rateLimitPeriod)
			}

			if count > rateLimitCount {
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests"})
			}

			return next(c)
		}
	}
}
