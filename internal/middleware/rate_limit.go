package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/pkg/i18n"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig configures the rate limiter. Reads and session writes
// are counted in separate windows per client IP.
type RateLimitConfig struct {
	RequestsPerMinute      int
	WriteRequestsPerMinute int
	KeyPrefix              string
}

// DefaultRateLimitConfig returns default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute:      120,
		WriteRequestsPerMinute: 60,
		KeyPrefix:              "drovic:ratelimit:",
	}
}

// bucket picks the window and limit a request is counted against
func (cfg RateLimitConfig) bucket(c *gin.Context) (string, int) {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return cfg.KeyPrefix + "read:" + c.ClientIP(), cfg.RequestsPerMinute
	}
	limit := cfg.WriteRequestsPerMinute
	if limit <= 0 {
		limit = cfg.RequestsPerMinute
	}
	return cfg.KeyPrefix + "write:" + c.ClientIP(), limit
}

// rateLimitScript is an atomic Lua script for sliding window rate limiting
var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local window_start = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
local count = redis.call('ZCARD', key)

if count < limit then
    redis.call('ZADD', key, now, now .. ':' .. math.random(1000000))
    redis.call('EXPIRE', key, math.ceil(window / 1000) + 1)
    return {1, limit - count - 1, 0}
else
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    local reset_at = 0
    if #oldest >= 2 then
        reset_at = tonumber(oldest[2]) + window
    end
    return {0, 0, reset_at}
end
`)

// RateLimit returns a gin middleware that rate limits by client IP.
// It fails open when Redis is missing or errors.
func RateLimit(redisClient *redis.Client, bundle *i18n.Bundle, cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key, limit := cfg.bucket(c)
		now := time.Now().UnixMilli()
		windowMs := int64(60 * 1000)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 200*time.Millisecond)
		result, err := rateLimitScript.Run(ctx, redisClient, []string{key},
			limit, windowMs, now,
		).Int64Slice()
		cancel()
		if err != nil || len(result) < 3 {
			c.Next()
			return
		}

		allowed := result[0] == 1
		remaining := result[1]
		resetAt := result[2]

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if !allowed {
			var retryAfter int64
			if resetAt > 0 {
				retryAfter = (resetAt - now) / 1000
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt/1000))
				c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			}
			common.ErrorResponse(c, http.StatusTooManyRequests, rejectMessage(bundle, GetLocale(c), retryAfter), nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// rejectMessage names the wait when the window reset is known
func rejectMessage(bundle *i18n.Bundle, locale i18n.Locale, retryAfter int64) string {
	if bundle == nil {
		return "Too many requests"
	}
	if retryAfter <= 0 {
		return bundle.T(locale, "error.too_many_requests")
	}
	return bundle.T(locale, "rate_limit.exceeded", retryAfter)
}
