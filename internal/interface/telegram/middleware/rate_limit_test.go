package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testLimiter() *RateLimiter {
	cfg := RateLimitConfig{
		MessagesPerMinute: 60,
		Burst:             3,
		// No cleanup loop in tests.
		CleanupInterval: 0,
	}
	return NewRateLimiter(cfg)
}

func TestAllow_BurstThenDenied(t *testing.T) {
	rl := testLimiter()

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow(1)
		assert.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, wait := rl.Allow(1)
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestAllow_UsersIndependent(t *testing.T) {
	rl := testLimiter()

	for i := 0; i < 3; i++ {
		rl.Allow(1)
	}
	allowed, _ := rl.Allow(1)
	assert.False(t, allowed)

	allowed, _ = rl.Allow(2)
	assert.True(t, allowed)
}

func TestAllow_Refills(t *testing.T) {
	rl := testLimiter()

	for i := 0; i < 3; i++ {
		rl.Allow(1)
	}
	allowed, _ := rl.Allow(1)
	assert.False(t, allowed)

	// 60/min refills one token per second.
	rl.mu.Lock()
	rl.buckets[1].lastFill = time.Now().Add(-time.Second)
	rl.mu.Unlock()

	allowed, _ = rl.Allow(1)
	assert.True(t, allowed)
}

func TestCleanup_EvictsIdleBuckets(t *testing.T) {
	rl := testLimiter()
	rl.config.IdleTimeout = time.Minute

	rl.Allow(1)
	rl.Allow(2)

	rl.mu.Lock()
	rl.buckets[1].lastSeen = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()

	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.buckets, int64(1))
	assert.Contains(t, rl.buckets, int64(2))
}
