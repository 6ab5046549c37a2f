package httpapi

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// loginLimiter allows at most max attempts per key within a sliding window.
// Keys that go quiet for a whole window are evicted by the cache janitor.
type loginLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	entries *cache.Cache
}

func newLoginLimiter() *loginLimiter {
	const window = 5 * time.Minute
	return &loginLimiter{
		window:  window,
		max:     10,
		entries: cache.New(window, 2*window),
	}
}

func (l *loginLimiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	var ts []time.Time
	if v, ok := l.entries.Get(key); ok {
		ts = v.([]time.Time)
	}

	cutoff := now.Add(-l.window)
	kept := make([]time.Time, 0, len(ts)+1)
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= l.max {
		l.entries.SetDefault(key, kept)
		return false
	}

	l.entries.SetDefault(key, append(kept, now))
	return true
}
