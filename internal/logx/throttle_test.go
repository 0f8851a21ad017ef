package logx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottleAllowsOncePerWindow(t *testing.T) {
	var th Throttle

	assert.True(t, th.Allow(time.Hour), "first call always passes")
	assert.False(t, th.Allow(time.Hour), "second call inside the window is suppressed")
}

func TestThrottleResetsAfterCooldown(t *testing.T) {
	var th Throttle

	assert.True(t, th.Allow(time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	assert.True(t, th.Allow(time.Millisecond))
}
