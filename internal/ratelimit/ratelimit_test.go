package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_PerKeyBuckets(t *testing.T) {
	krl := New(1, 2)
	defer krl.Stop()

	// Burst of 2 for each key, independently.
	assert.True(t, krl.Allow("1.2.3.4"))
	assert.True(t, krl.Allow("1.2.3.4"))
	assert.False(t, krl.Allow("1.2.3.4"))

	assert.True(t, krl.Allow("5.6.7.8"))
}

func TestStop_Idempotent(t *testing.T) {
	krl := New(1, 1)
	krl.Stop()
	krl.Stop()
}

func TestEvictIdle(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	krl.Allow("1.2.3.4")
	krl.Allow("5.6.7.8")

	// An idle key is evicted; an active one survives and keeps its bucket.
	krl.mu.Lock()
	krl.limiters["1.2.3.4"].lastSeen = time.Now().Add(-2 * maxIdle)
	krl.mu.Unlock()

	krl.evictIdle(time.Now())

	krl.mu.Lock()
	defer krl.mu.Unlock()
	assert.NotContains(t, krl.limiters, "1.2.3.4")
	assert.Contains(t, krl.limiters, "5.6.7.8")
}
