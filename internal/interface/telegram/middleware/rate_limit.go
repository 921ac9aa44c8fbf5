package middleware

import (
	"sync"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// RATE LIMITING MIDDLEWARE
// Per-user token bucket. Protects the bot (and the Telegram API quota) from
// keyboard mashing; different users never contend on each other's bucket.
// ══════════════════════════════════════════════════════════════════════════════

// RateLimitConfig holds configuration for the rate limiter.
type RateLimitConfig struct {
	// MessagesPerMinute is the sustained per-user rate.
	MessagesPerMinute int

	// Burst is the bucket capacity.
	Burst int

	// CleanupInterval is how often idle buckets are evicted.
	CleanupInterval time.Duration

	// IdleTimeout is how long a bucket may be unused before eviction.
	IdleTimeout time.Duration
}

// DefaultRateLimitConfig returns sensible defaults.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MessagesPerMinute: 20,
		Burst:             5,
		CleanupInterval:   5 * time.Minute,
		IdleTimeout:       30 * time.Minute,
	}
}

// RateLimiter tracks one token bucket per user.
type RateLimiter struct {
	config  RateLimitConfig
	mu      sync.Mutex
	buckets map[int64]*tokenBucket
	stopCh  chan struct{}
}

type tokenBucket struct {
	tokens   float64
	lastFill time.Time
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter and starts its cleanup loop.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.MessagesPerMinute <= 0 {
		config.MessagesPerMinute = DefaultRateLimitConfig().MessagesPerMinute
	}
	if config.Burst <= 0 {
		config.Burst = DefaultRateLimitConfig().Burst
	}

	rl := &RateLimiter{
		config:  config,
		buckets: make(map[int64]*tokenBucket),
		stopCh:  make(chan struct{}),
	}
	if config.CleanupInterval > 0 {
		go rl.cleanupLoop()
	}
	return rl
}

// Allow consumes one token for the user. It returns false when the user is
// over their rate, plus the suggested wait before the next attempt.
func (rl *RateLimiter) Allow(userID int64) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[userID]
	if !ok {
		b = &tokenBucket{
			tokens:   float64(rl.config.Burst),
			lastFill: now,
		}
		rl.buckets[userID] = b
	}

	refillRate := float64(rl.config.MessagesPerMinute) / 60.0
	elapsed := now.Sub(b.lastFill).Seconds()
	b.tokens += elapsed * refillRate
	if b.tokens > float64(rl.config.Burst) {
		b.tokens = float64(rl.config.Burst)
	}
	b.lastFill = now
	b.lastSeen = now

	if b.tokens < 1 {
		wait := time.Duration((1 - b.tokens) / refillRate * float64(time.Second))
		return false, wait
	}

	b.tokens--
	return true, 0
}

// Close stops the cleanup loop.
func (rl *RateLimiter) Close() {
	close(rl.stopCh)
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.config.IdleTimeout)
	for id, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, id)
		}
	}
}
