package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/config"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/infrastructure/ratelimit"
)

// RateLimitMiddleware limits requests per client IP for a single endpoint.
// The key prefix keeps counters for different endpoints separate.
func RateLimitMiddleware(limiter ratelimit.RateLimiter, rule config.RateLimitRule, keyPrefix string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || !rule.Enabled {
			c.Next()
			return
		}

		key := keyPrefix + ":" + c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key, rule)
		if err != nil {
			// Fail open: a broken limiter must not take down auth.
			logger.Warn("Rate limiter check failed", zap.Error(err), zap.String("key", key))
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, please try again later"})
			return
		}
		c.Next()
	}
}
