package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type ipEntry struct {
	count     int
	expiresAt time.Time
}

// RateLimiter counts requests per client IP within a fixed window and sets
// KeyRateLimited once an IP exceeds maxRequests. It never aborts the request.
// The sweep goroutine exits when done is closed.
func RateLimiter(maxRequests int, window time.Duration, done <-chan struct{}) gin.HandlerFunc {
	var mu sync.Mutex
	entries := make(map[string]*ipEntry)

	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				mu.Lock()
				now := time.Now()
				for ip, entry := range entries {
					if now.After(entry.expiresAt) {
						delete(entries, ip)
					}
				}
				mu.Unlock()
			}
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		entry, exists := entries[ip]
		now := time.Now()

		if !exists || now.After(entry.expiresAt) {
			entries[ip] = &ipEntry{count: 1, expiresAt: now.Add(window)}
			mu.Unlock()
			c.Next()
			return
		}

		entry.count++
		limited := entry.count > maxRequests
		mu.Unlock()

		if limited {
			c.Set(KeyRateLimited, true)
		}
		c.Next()
	}
}

// IsRateLimited reports whether RateLimiter flagged the request.
func IsRateLimited(c *gin.Context) bool {
	return c.GetBool(KeyRateLimited)
}
