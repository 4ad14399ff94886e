package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/config"
)

// RateLimiter counts attempts per key in fixed windows
type RateLimiter interface {
	// Allow records an attempt for key.
	// Returns: allowed bool, attempts in the current window, error
	Allow(ctx context.Context, key string) (bool, int64, error)

	// Window returns the length of a counting window
	Window() time.Duration

	// Close closes the Redis connection
	Close() error
}

type redisRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *slog.Logger
}

// NewRateLimiter creates a Redis-based rate limiter allowing LOGIN_RATE_LIMIT
// attempts per LOGIN_RATE_WINDOW seconds
func NewRateLimiter(client *redis.Client, cfg *config.Config, logger *slog.Logger) RateLimiter {
	window := time.Duration(cfg.LoginRateWindow) * time.Second
	if window <= 0 {
		window = time.Minute
	}

	logger.Info("✅ [RateLimiter] Using Redis rate limiter",
		"limit", cfg.LoginRateLimit,
		"window", window,
	)

	return &redisRateLimiter{
		client: client,
		limit:  cfg.LoginRateLimit,
		window: window,
		logger: logger,
	}
}

// loginKey generates the Redis key for login attempts
// Format: rate:login:{clientIP}
func loginKey(clientIP string) string {
	return fmt.Sprintf("rate:login:%s", clientIP)
}

func (r *redisRateLimiter) Allow(ctx context.Context, key string) (bool, int64, error) {
	// If limit is 0 or negative, unlimited
	if r.limit <= 0 {
		return true, 0, nil
	}

	// ExpireNX starts the window on the first attempt and repairs a key left without a TTL
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("❌ [RateLimiter] Failed to increment counter", "error", err, "key", key)
		// On error, allow the request but log it
		return true, 0, err
	}

	count := incr.Val()
	return count <= r.limit, count, nil
}

func (r *redisRateLimiter) Window() time.Duration {
	return r.window
}

func (r *redisRateLimiter) Close() error {
	return r.client.Close()
}

// NoOpRateLimiter is a rate limiter that always allows requests
// Used when Redis is not available
type NoOpRateLimiter struct {
	logger *slog.Logger
}

// NewNoOpRateLimiter creates a no-op rate limiter
func NewNoOpRateLimiter(logger *slog.Logger) RateLimiter {
	logger.Warn("⚠️ [RateLimiter] Using no-op rate limiter - rate limiting is disabled")
	return &NoOpRateLimiter{logger: logger}
}

func (r *NoOpRateLimiter) Allow(ctx context.Context, key string) (bool, int64, error) {
	return true, 0, nil
}

func (r *NoOpRateLimiter) Window() time.Duration {
	return 0
}

func (r *NoOpRateLimiter) Close() error {
	return nil
}

// LimitLogin rejects login attempts beyond the limiter's budget with 429.
// Limiter failures let the request through.
func LimitLogin(limiter RateLimiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, count, err := limiter.Allow(c.Request.Context(), loginKey(c.ClientIP()))
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			logger.Warn("⚠️ [RateLimiter] Login rate limit exceeded",
				"client_ip", c.ClientIP(),
				"attempts", count,
			)
			c.Header("Retry-After", strconv.Itoa(int(limiter.Window().Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, please try again later"})
			return
		}

		c.Next()
	}
}
