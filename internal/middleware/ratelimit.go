package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/tasker-api/internal/errors"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter map; idle limiters are dropped past it.
const maxTrackedClients = 10000

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	window   time.Duration
}

// NewIPRateLimiter allows requests per window for each client, with bursts up to requests.
func NewIPRateLimiter(requests int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(window / time.Duration(requests)),
		burst:    requests,
		window:   window,
	}
}

// Limiter returns the bucket for key, creating it on first use.
func (l *IPRateLimiter) Limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.limiters[key]; ok {
		return lim
	}

	if len(l.limiters) >= maxTrackedClients {
		for k, lim := range l.limiters {
			if lim.Tokens() >= float64(l.burst) {
				delete(l.limiters, k)
			}
		}
	}

	lim := rate.NewLimiter(l.limit, l.burst)
	l.limiters[key] = lim
	return lim
}

// RateLimit rejects requests over the per-IP budget with 429
func RateLimit(l *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Limiter(c.ClientIP()).Allow() {
			retryAfter := int(math.Ceil(l.window.Seconds() / float64(l.burst)))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			apierrors.TooManyRequests(c, "Too many login attempts, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
