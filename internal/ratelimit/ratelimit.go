// In file: internal/ratelimit/ratelimit.go

// Package ratelimit provides a Redis-backed fixed-window rate limiter as gin
// middleware. Limits are per authenticated user, falling back to client IP
// for anonymous routes.
package ratelimit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dileep-u-k/mcp-gateway/internal/auth"
)

// Limiter counts requests in fixed Redis windows.
type Limiter struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewLimiter creates a limiter on the shared Redis client.
func NewLimiter(rdb *redis.Client, log zerolog.Logger) *Limiter {
	return &Limiter{rdb: rdb, log: log.With().Str("component", "ratelimit").Logger()}
}

// Middleware limits the route to limit requests per window. The route name
// keys the counter so different routes have independent budgets. Redis being
// unavailable fails open: the request proceeds and a warning is logged.
func (l *Limiter) Middleware(route string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.ClientIP()
		if identity, ok := auth.CurrentIdentity(c); ok {
			subject = identity.UserID
		}
		key := fmt.Sprintf("ratelimit:%s:%s", route, subject)

		count, err := l.rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			l.log.Warn().Err(err).Str("route", route).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			l.rdb.Expire(c.Request.Context(), key, window)
		}
		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Rate limit exceeded: %d per %s", limit, window),
			})
			return
		}
		c.Next()
	}
}
