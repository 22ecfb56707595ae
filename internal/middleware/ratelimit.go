package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"story-narrator/internal/models"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig limits each client IP to Limit requests per Window.
type RateLimitConfig struct {
	Limit  uint
	Window time.Duration
	// Redis shares counters between replicas; nil keeps them in memory.
	Redis *redis.Client
}

// RateLimit returns a per-client-IP rate limiting middleware.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	var store ratelimit.Store
	if cfg.Redis != nil {
		store = ratelimit.RedisStore(&ratelimit.RedisOptions{
			RedisClient: cfg.Redis,
			Rate:        cfg.Window,
			Limit:       cfg.Limit,
		})
	} else {
		store = ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  cfg.Window,
			Limit: cfg.Limit,
		})
	}
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	retryAfter := int(math.Ceil(time.Until(info.ResetTime).Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
		Code:    models.ErrCodeTooManyRequests,
		Message: fmt.Sprintf("Too many requests. Try again in %ds.", retryAfter),
	})
}
