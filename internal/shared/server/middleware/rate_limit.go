package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/server/respond"
)

const (
	// QuotaDefault is the quota applied when Classify returns nothing.
	QuotaDefault = "DEFAULT"

	idleBucketTTL = 10 * time.Minute
	sweepEvery    = time.Minute
)

// Quota refills PerSecond tokens up to Burst. A zero quota never throttles.
type Quota struct {
	PerSecond float64
	Burst     int
}

func (q Quota) unlimited() bool {
	return q.PerSecond <= 0 || q.Burst <= 0
}

// RateLimitOptions selects a named quota per request. Requests whose class has
// no quota pass through.
type RateLimitOptions struct {
	Quotas   map[string]Quota
	Classify func(*gin.Context) string
	Limiter  *RateLimiter
}

// RateLimiter holds one token bucket per caller and quota class. Buckets idle
// longer than idleBucketTTL are dropped, since every guest id gets its own.
type RateLimiter struct {
	clock func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter builds a limiter; a nil clock means time.Now.
func NewRateLimiter(clock func() time.Time) *RateLimiter {
	if clock == nil {
		clock = time.Now
	}
	return &RateLimiter{clock: clock, buckets: make(map[string]*bucket)}
}

// RateLimit throttles callers by identity, falling back to client IP.
func RateLimit(opts RateLimitOptions) gin.HandlerFunc {
	limiter := opts.Limiter
	if limiter == nil {
		limiter = NewRateLimiter(nil)
	}
	return func(c *gin.Context) {
		class := QuotaDefault
		if opts.Classify != nil {
			if name := strings.TrimSpace(opts.Classify(c)); name != "" {
				class = name
			}
		}
		quota, ok := opts.Quotas[class]
		if !ok {
			c.Next()
			return
		}

		caller := UserIDFromContext(c)
		if caller == "" {
			caller = "ip:" + c.ClientIP()
		}
		wait, allowed := limiter.Take(caller+"#"+class, quota)
		if allowed {
			c.Next()
			return
		}

		metrics.IncThrottled()
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many requests", gin.H{
			"retryAfterMs": wait.Milliseconds(),
			"quota":        class,
		})
	}
}

// Take spends one token from key's bucket. When the bucket is empty it reports
// the time until the next token.
func (l *RateLimiter) Take(key string, q Quota) (time.Duration, bool) {
	if l == nil || q.unlimited() {
		return 0, true
	}
	now := l.clock()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(q.Burst), seen: now}
		l.buckets[key] = b
	}
	if dt := now.Sub(b.seen).Seconds(); dt > 0 {
		b.tokens = math.Min(float64(q.Burst), b.tokens+dt*q.PerSecond)
	}
	b.seen = now

	if b.tokens >= 1 {
		b.tokens--
		return 0, true
	}
	missing := (1 - b.tokens) / q.PerSecond
	return time.Duration(math.Ceil(missing*1000)) * time.Millisecond, false
}

// sweep drops idle buckets at most once per sweepEvery. Callers hold l.mu.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepEvery {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.seen) > idleBucketTTL {
			delete(l.buckets, key)
		}
	}
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func retryAfterSeconds(wait time.Duration) int {
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
