package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterCooldown(t *testing.T) {
	rl := NewRateLimiter(50 * time.Millisecond)

	assert.True(t, rl.CanUse("user1"))
	assert.False(t, rl.CanUse("user1"), "second use inside the cooldown is blocked")
	assert.True(t, rl.CanUse("user2"), "cooldowns are per user")

	assert.Greater(t, rl.TimeUntilNext("user1"), time.Duration(0))
	assert.Equal(t, time.Duration(0), rl.TimeUntilNext("unseen"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.CanUse("user1"))
}

func TestStartCleanupEvictsStaleEntries(t *testing.T) {
	rl := NewRateLimiter(time.Millisecond)
	rl.CanUse("stale")

	rl.StartCleanup(5 * time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	rl.mu.Lock()
	_, exists := rl.users["stale"]
	rl.mu.Unlock()
	assert.False(t, exists, "background cleanup must bound the per-user map")
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(time.Millisecond)
	rl.CanUse("stale")

	time.Sleep(5 * time.Millisecond)
	rl.Cleanup()

	assert.Equal(t, time.Duration(0), rl.TimeUntilNext("stale"))
}
