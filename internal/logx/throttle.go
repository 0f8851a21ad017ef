// Package logx holds small logging helpers shared across the managers.
package logx

import (
	"sync"
	"time"
)

// Throttle gates repeated log lines: Allow returns true at most once per
// cooldown window regardless of call frequency. The zero value is ready
// to use and allows the first call immediately.
type Throttle struct {
	mu   sync.Mutex
	last time.Time
}

// Allow reports whether enough time has passed since the last allowed
// call, and records the current time if so.
func (t *Throttle) Allow(cooldown time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	if now.Sub(t.last) < cooldown {
		return false
	}
	t.last = now
	return true
}
