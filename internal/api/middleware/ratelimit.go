package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/inboxzero/internal/api/response"
	"github.com/welldanyogia/inboxzero/internal/logger"
	"golang.org/x/time/rate"
)

// Limiter eviction defaults
const (
	DefaultCleanupInterval = 10 * time.Minute
	DefaultLimiterIdleTTL  = 30 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter manages rate limiters per IP address
type IPRateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

// NewIPRateLimiter creates a new IP-based rate limiter
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
		now:      time.Now,
	}
}

// GetLimiter returns the rate limiter for the given IP
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	v, exists := i.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(i.rate, i.burst)}
		i.visitors[ip] = v
	}
	v.lastSeen = i.now()

	return v.limiter
}

// CleanupOldEntries removes limiters not used within maxIdle
func (i *IPRateLimiter) CleanupOldEntries(maxIdle time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()

	cutoff := i.now().Add(-maxIdle)
	for ip, v := range i.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(i.visitors, ip)
		}
	}
}

// RunCleanup evicts idle limiters every interval until ctx is done
func (i *IPRateLimiter) RunCleanup(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			i.CleanupOldEntries(maxIdle)
		}
	}
}

// RateLimiterWithConfig returns rate limiting middleware backed by limiter
func RateLimiterWithConfig(limiter *IPRateLimiter, security *logger.SecurityLogger) echo.MiddlewareFunc {
	retryAfter := strconv.Itoa(retryAfterSeconds(limiter.rate))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			l := limiter.GetLimiter(ip)

			if !l.Allow() {
				if security != nil {
					security.RateLimitExceeded(ip, c.Path())
				}

				c.Response().Header().Set("Retry-After", retryAfter)
				return response.TooManyRequests(c, "rate limit exceeded")
			}

			return next(c)
		}
	}
}

// retryAfterSeconds is the time for one token to refill, rounded up
func retryAfterSeconds(r rate.Limit) int {
	if r <= 0 {
		return 60
	}
	secs := int(1/float64(r) + 0.999)
	if secs < 1 {
		return 1
	}
	return secs
}
