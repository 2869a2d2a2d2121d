package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_QuotaPerWindow(t *testing.T) {
	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(5, time.Minute)
	limiter.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"), "request %d should pass", i+1)
	}
	assert.False(t, limiter.Allow("10.0.0.1"), "sixth request must be rejected")
	assert.False(t, limiter.Allow("10.0.0.1"), "rejections do not reset the window")

	// Another address has its own counter.
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestLimiter_WindowElapses(t *testing.T) {
	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(2, time.Minute)
	limiter.now = func() time.Time { return current }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	current = current.Add(61 * time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"), "fresh window starts a fresh quota")
}

func TestLimiter_ConcurrentCounts(t *testing.T) {
	limiter := New(50, time.Minute)

	var wg sync.WaitGroup
	allowed := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- limiter.Allow("10.0.0.1")
		}()
	}
	wg.Wait()
	close(allowed)

	passed := 0
	for ok := range allowed {
		if ok {
			passed++
		}
	}
	assert.Equal(t, 50, passed)
}
