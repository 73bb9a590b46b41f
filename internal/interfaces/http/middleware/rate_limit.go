package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
)

const rateLimitWindow = time.Minute

// Limiter counts requests per key in fixed one-minute windows
type Limiter interface {
	Hit(ctx context.Context, key string) (int, error)
}

// RedisLimiter keeps window counters in Redis so limits hold across instances
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

// NewRedisLimiter creates a Redis-backed limiter
func NewRedisLimiter(client *redis.Client, prefix string) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix}
}

// Hit increments the counter for key and returns the new count
func (l *RedisLimiter) Hit(ctx context.Context, key string) (int, error) {
	redisKey := l.prefix + ":rate_limit:" + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, rateLimitWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

type window struct {
	start time.Time
	count int
}

// MemoryLimiter is the single-instance limiter used without Redis
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewMemoryLimiter creates an in-process limiter
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{windows: make(map[string]*window), now: time.Now}
}

// Hit increments the counter for key and returns the new count
func (l *MemoryLimiter) Hit(_ context.Context, key string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= rateLimitWindow {
		// Drop expired windows while holding the lock
		for k, old := range l.windows {
			if now.Sub(old.start) >= rateLimitWindow {
				delete(l.windows, k)
			}
		}
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++
	return w.count, nil
}

// RateLimit rejects clients that exceed the configured requests per minute
func RateLimit(cfg *config.Config, limiter Limiter, logger logrus.FieldLogger) gin.HandlerFunc {
	limit := cfg.Security.RateLimitPerMinute

	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		count, err := limiter.Hit(ctx, c.ClientIP())
		if err != nil {
			// If the limiter is down, allow the request
			logger.WithError(err).Warn("Rate limiter unavailable")
			c.Next()
			return
		}

		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > limit {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": 60,
			})
			return
		}

		c.Next()
	}
}
