package rest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_PruneIdle(t *testing.T) {
	rl := newIPRateLimiter(10, 10)
	defer rl.close()

	rl.allow("203.0.113.1")
	rl.allow("203.0.113.2")

	rl.mu.Lock()
	rl.limiters["203.0.113.1"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.pruneIdle(time.Now())

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.limiters, "203.0.113.1")
	assert.Contains(t, rl.limiters, "203.0.113.2")
}

func TestIPRateLimiter_CloseStopsSweepAndIsIdempotent(t *testing.T) {
	rl := newIPRateLimiter(10, 10)

	rl.close()
	rl.close()

	select {
	case <-rl.stop:
	default:
		t.Fatal("stop channel still open after close")
	}

	// a closed limiter still answers allow
	assert.True(t, rl.allow("203.0.113.9"))
}
