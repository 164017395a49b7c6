package middleware

import (
	"net/http"
	"sync"
	"time"

	"dukapos/internal/apierror"

	"github.com/gin-gonic/gin"
)

// LoginRateLimiter caps login attempts per client IP. The gateway sits on a
// shop LAN, but the login form is still the one surface worth throttling.
func LoginRateLimiter(maxAttempts int, window time.Duration) gin.HandlerFunc {
	type bucket struct {
		count int
		reset time.Time
	}
	var (
		mu      sync.Mutex
		buckets = map[string]*bucket{}
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		b, ok := buckets[ip]
		if !ok || now.After(b.reset) {
			b = &bucket{reset: now.Add(window)}
			buckets[ip] = b
		}
		b.count++
		over := b.count > maxAttempts
		// Opportunistic purge of expired buckets
		if len(buckets) > 64 {
			for k, v := range buckets {
				if now.After(v.reset) {
					delete(buckets, k)
				}
			}
		}
		mu.Unlock()

		if over {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many login attempts, try again shortly"))
			return
		}
		c.Next()
	}
}
