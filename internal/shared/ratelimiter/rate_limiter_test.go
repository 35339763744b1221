package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_UnderLimit(t *testing.T) {
	rl := New(10, time.Minute)

	start := time.Now()
	for i := 0; i < 5; i++ {
		rl.WaitIfNeeded()
	}

	assert.Less(t, time.Since(start), 100*time.Millisecond, "should not sleep under the limit")
	assert.Equal(t, 5, rl.count)
}

func TestRateLimiter_SleepsOverLimit(t *testing.T) {
	rl := New(2, 50*time.Millisecond)

	start := time.Now()
	rl.WaitIfNeeded()
	rl.WaitIfNeeded()
	rl.WaitIfNeeded() // third call exceeds the budget and sleeps out the interval

	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
	assert.Equal(t, 1, rl.count, "count resets after the sleep")
}

func TestRateLimiter_ResetsAfterInterval(t *testing.T) {
	rl := New(1, 20*time.Millisecond)

	rl.WaitIfNeeded()
	time.Sleep(25 * time.Millisecond)

	start := time.Now()
	rl.WaitIfNeeded()
	assert.Less(t, time.Since(start), 10*time.Millisecond, "budget should reset after the interval")
}
