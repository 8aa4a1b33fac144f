package middleware

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/investify-pos/pkg/utils"
	"golang.org/x/time/rate"
)

// OperatorRateLimiter gives every signed-in operator a token bucket, so a
// stuck key or a retry loop on one terminal cannot flood the checkout.
type OperatorRateLimiter struct {
	mu      sync.Mutex
	buckets map[uuid.UUID]*bucket
	rate    rate.Limit
	burst   int
	sweep   time.Duration
	idleTTL time.Duration
	nowFunc func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterConfig configures an OperatorRateLimiter.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	CleanupInterval   time.Duration // how often idle buckets are dropped
	EntryTTL          time.Duration // how long a bucket may stay idle
}

// RateLimiterStats is a snapshot of an OperatorRateLimiter.
type RateLimiterStats struct {
	ActiveOperators int     `json:"active_operators"`
	RatePerSecond   float64 `json:"rate_per_second"`
	Burst           int     `json:"burst"`
}

// DefaultRateLimiterConfig allows 10 requests per second with bursts of 20.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}
}

// NewOperatorRateLimiter creates a limiter. Idle buckets are only dropped
// while Run is running.
func NewOperatorRateLimiter(cfg RateLimiterConfig) *OperatorRateLimiter {
	def := DefaultRateLimiterConfig()
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}
	if cfg.EntryTTL <= 0 {
		cfg.EntryTTL = def.EntryTTL
	}
	return &OperatorRateLimiter{
		buckets: make(map[uuid.UUID]*bucket),
		rate:    rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.BurstSize,
		sweep:   cfg.CleanupInterval,
		idleTTL: cfg.EntryTTL,
		nowFunc: time.Now,
	}
}

// Run drops idle buckets until ctx is done.
func (rl *OperatorRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.cleanup(now)
		}
	}
}

// Middleware enforces the limit. It must run after AuthMiddleware; requests
// without an operator pass through.
func (rl *OperatorRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		operatorID, ok := c.Value(utils.ContextOperatorID).(uuid.UUID)
		if !ok || operatorID == uuid.Nil {
			c.Next()
			return
		}

		now := rl.nowFunc()
		limiter := rl.limiterFor(operatorID, now)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))

		if wait, allowed := take(limiter, now); !allowed {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
			response.TooManyRequests(c, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.TokensAt(now))))
		c.Next()
	}
}

// Stats reports the current number of buckets and the limits.
func (rl *OperatorRateLimiter) Stats() RateLimiterStats {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return RateLimiterStats{
		ActiveOperators: len(rl.buckets),
		RatePerSecond:   float64(rl.rate),
		Burst:           rl.burst,
	}
}

func (rl *OperatorRateLimiter) limiterFor(operatorID uuid.UUID, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[operatorID]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.buckets[operatorID] = b
	}
	b.lastSeen = now
	return b.limiter
}

// cleanup drops buckets idle since before now - idleTTL.
func (rl *OperatorRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.idleTTL)
	for id, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, id)
		}
	}
}

// take consumes a token at now. When none is available the reservation is
// returned and the wait until the next token is reported.
func take(limiter *rate.Limiter, now time.Time) (time.Duration, bool) {
	r := limiter.ReserveN(now, 1)
	if !r.OK() {
		return time.Second, false
	}
	wait := r.DelayFrom(now)
	if wait > 0 {
		r.CancelAt(now)
		return wait, false
	}
	return 0, true
}

func retryAfterSeconds(wait time.Duration) int {
	return max(1, int(math.Ceil(wait.Seconds())))
}
