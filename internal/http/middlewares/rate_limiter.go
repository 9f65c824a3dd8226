package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	clients map[string]*clientBucket
}

type clientBucket struct {
	count     int
	windowEnd time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*clientBucket),
	}
}

// Middleware returns a gin.HandlerFunc that enforces rate limit for a derived key

func (rl *RateLimiter) RateLimiterMiddleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			// fallback to IP if key cannot be derived

			key = clientIP(c)
		}

		now := time.Now()

		rl.mu.Lock()

		b, ok := rl.clients[key]

		if !ok || now.After(b.windowEnd) {
			rl.clients[key] = &clientBucket{
				count:     1,
				windowEnd: now.Add(rl.window),
			}

			rl.mu.Unlock()
			c.Next()
			return
		}

		if b.count >= rl.limit {
			retryAfter := int(time.Until(b.windowEnd).Seconds())

			if retryAfter < 0 {
				retryAfter = 0
			}

			rl.mu.Unlock()

			c.Header("Retry-After", strconv.Itoa(retryAfter))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "rate_limited",
					"message": "Too many requests. Please try again shortly.",
				},
			})

			return
		}

		b.count++
		rl.mu.Unlock()
		c.Next()
	}
}

// rate limit the public send endpoint by caller IP
func KeyByIP(c *gin.Context) string {
	return clientIP(c)
}

func clientIP(c *gin.Context) string {
	// Gin's ClientIP respects X-Forwarded-For / X-Real-IP if configured.
	ip := c.ClientIP()

	host, _, err := net.SplitHostPort(ip)

	if err == nil && host != "" {
		return host
	}

	return ip
}
