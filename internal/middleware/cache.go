package middleware

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CacheConfig configures the cache middleware
type CacheConfig struct {
	TTL       time.Duration
	KeyPrefix string
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:       30 * time.Second,
		KeyPrefix: "api:cache:",
	}
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// Cache returns a gin middleware that caches successful GET responses in Redis.
// The key covers path, query and negotiated locale.
func Cache(redisClient *redis.Client, cfg CacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || redisClient == nil {
			c.Next()
			return
		}

		key := cfg.KeyPrefix + cacheKey(c.Request.URL.Path, c.Request.URL.RawQuery, string(GetLocale(c)))

		ctx := c.Request.Context()
		if val, err := redisClient.Get(ctx, key).Bytes(); err == nil {
			var cached cachedResponse
			if json.Unmarshal(val, &cached) == nil {
				c.Header("X-Cache", "HIT")
				c.Data(cached.Status, cached.ContentType, []byte(cached.Body))
				c.Abort()
				return
			}
		}

		w := &responseWriter{ResponseWriter: c.Writer, body: make([]byte, 0, 1024)}
		c.Writer = w
		c.Header("X-Cache", "MISS")

		c.Next()

		status := w.Status()
		if status < 200 || status >= 300 {
			return
		}
		data, err := json.Marshal(cachedResponse{
			Status:      status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        string(w.body),
		})
		if err != nil {
			return
		}
		redisClient.Set(ctx, key, data, cfg.TTL) //nolint:errcheck
	}
}

// CacheWithTTL is a shorthand for Cache with a custom TTL
func CacheWithTTL(redisClient *redis.Client, ttl time.Duration) gin.HandlerFunc {
	cfg := DefaultCacheConfig()
	if ttl > 0 {
		cfg.TTL = ttl
	}
	return Cache(redisClient, cfg)
}

func cacheKey(path, query, locale string) string {
	raw := locale + "|" + path
	if query != "" {
		raw += "?" + query
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}

// responseWriter captures the response body
type responseWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}
