package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	constants "wordrush/internal/constants"
	util "wordrush/internal/util"
)

func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
		}
		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.Request.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), constants.RequestIDKey, reqID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-Id", reqID)
		c.Next()
	}
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

type limiterRegistry struct {
	mu      sync.RWMutex
	entries map[string]*limiterEntry
	rps     int
	burst   int
	ttl     time.Duration
}

func newLimiterRegistry(rps, burst int, ttl time.Duration) *limiterRegistry {
	if rps <= 0 {
		rps = 1
	}
	return &limiterRegistry{
		entries: make(map[string]*limiterEntry),
		rps:     rps,
		burst:   burst,
		ttl:     ttl,
	}
}

func (lr *limiterRegistry) get(key string) *rate.Limiter {
	lr.mu.RLock()
	entry, ok := lr.entries[key]
	lr.mu.RUnlock()
	if ok {
		lr.mu.Lock()
		if entry, ok = lr.entries[key]; ok {
			entry.lastAccess = time.Now()
		}
		lr.mu.Unlock()
		if ok {
			return entry.limiter
		}
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()
	if entry, ok = lr.entries[key]; ok {
		entry.lastAccess = time.Now()
		return entry.limiter
	}

	lim := rate.NewLimiter(rate.Every(time.Second/time.Duration(lr.rps)), lr.burst)
	lr.entries[key] = &limiterEntry{limiter: lim, lastAccess: time.Now()}
	return lim
}

func (lr *limiterRegistry) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !lr.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down."})
			return
		}
		c.Next()
	}
}

func (lr *limiterRegistry) startCleanup() {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			lr.cleanupStale()
		}
	}()
	util.LogInfo("Started rate limiter cleanup routine")
}

func (lr *limiterRegistry) cleanupStale() {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	cutoff := time.Now().Add(-lr.ttl)
	removed := 0
	for key, entry := range lr.entries {
		if entry.lastAccess.Before(cutoff) {
			delete(lr.entries, key)
			removed++
		}
	}
	if removed > 0 {
		util.LogInfo("Cleaned up %d stale rate limiters", removed)
	}
}
