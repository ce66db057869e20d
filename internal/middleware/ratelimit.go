package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// limiter tracks per-IP request counts over a fixed window.
//
// NOTE: in-memory only. Multi-instance deployments need a shared store
// (e.g. Redis) for the limit to be global.
type limiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	window  time.Duration
	limit   int
}

type clientWindow struct {
	windowStart time.Time
	count       int
}

func (l *limiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cw, ok := l.clients[ip]
	if !ok || now.Sub(cw.windowStart) > l.window {
		l.clients[ip] = &clientWindow{windowStart: now, count: 1}
		return true
	}
	cw.count++
	return cw.count <= l.limit
}

// RateLimiter limits each client IP to limit requests per window.
// Requests over the limit get HTTP 429 Too Many Requests.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RateLimiter(60, time.Minute))
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := &limiter{
		clients: make(map[string]*clientWindow),
		window:  window,
		limit:   limit,
	}
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
