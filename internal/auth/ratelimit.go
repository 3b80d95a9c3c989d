package auth

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter caps requests per client IP inside a sliding window.
// The portal fronts every API route with it; the ceiling is high
// enough that only abusive clients ever hit it.
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo

	maxAttempts int
	window      time.Duration
}

type attemptInfo struct {
	count    int
	firstTry time.Time
}

// NewRateLimiter creates a new rate limiter
// maxAttempts: max requests within the window
// window: time window for counting requests
func NewRateLimiter(maxAttempts int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		attempts:    make(map[string]*attemptInfo),
		maxAttempts: maxAttempts,
		window:      window,
	}
	go rl.cleanup()
	return rl
}

// DefaultRateLimiter creates a rate limiter with the portal defaults:
// 25000 requests per 15 minutes.
func DefaultRateLimiter() *RateLimiter {
	return NewRateLimiter(25000, 15*time.Minute)
}

// Allow checks if the given key (IP address) may proceed
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	info, exists := rl.attempts[key]

	if !exists || now.Sub(info.firstTry) > rl.window {
		rl.attempts[key] = &attemptInfo{count: 1, firstTry: now}
		return true
	}

	info.count++
	return info.count <= rl.maxAttempts
}

// RetryAfter returns how long the key must wait once blocked
func (rl *RateLimiter) RetryAfter(key string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	info, exists := rl.attempts[key]
	if !exists {
		return 0
	}
	remaining := rl.window - time.Since(info.firstTry)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup removes expired entries periodically
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, info := range rl.attempts {
			if now.Sub(info.firstTry) > rl.window {
				delete(rl.attempts, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware returns an Echo middleware that rate limits requests
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			if !rl.Allow(key) {
				retryAfter := int(rl.RetryAfter(key).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}

				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"success":     false,
					"error":       "too many requests",
					"retry_after": retryAfter,
				})
			}

			return next(c)
		}
	}
}
