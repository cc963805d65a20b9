package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	rateWindow      = time.Minute
	cleanupInterval = 5 * time.Minute
)

// windowEntry tracks the request count of one client in the current window.
type windowEntry struct {
	count     int
	timestamp time.Time
}

// RateLimiter returns a middleware that enforces a fixed one-minute window per client IP.
// The cleanup goroutine stops when ctx is done.
func RateLimiter(ctx context.Context, maxRequests int) gin.HandlerFunc {
	var mu sync.Mutex
	clients := make(map[string]*windowEntry)

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			mu.Lock()
			now := time.Now()
			for ip, entry := range clients {
				if now.Sub(entry.timestamp) > 2*rateWindow {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	message := "Rate limit exceeded. Maximum " + strconv.Itoa(maxRequests) + " requests per minute."

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		entry, exists := clients[ip]
		if !exists || now.Sub(entry.timestamp) > rateWindow {
			clients[ip] = &windowEntry{count: 1, timestamp: now}
			mu.Unlock()
			c.Next()
			return
		}

		if entry.count >= maxRequests {
			retryAfter := rateWindow - now.Sub(entry.timestamp)
			mu.Unlock()
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message})
			return
		}

		entry.count++
		mu.Unlock()
		c.Next()
	}
}
