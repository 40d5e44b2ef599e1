// Package rate implements the per-user sliding-window request throttle.
//
// The limiter is an explicitly constructed, injectable service — never a
// module-level singleton — so tests can instantiate independent instances
// and control the clock. State is a per-user set of request timestamps
// inside the current window, guarded by a mutex because concurrent requests
// from one user race on the same entry.
package rate

import (
	"sync"
	"time"

	"github.com/tmaksat/newsauth/internal/config"
)

// Limiter enforces a sliding-window request budget per user id.
type Limiter struct {
	mu      sync.Mutex
	entries map[int64][]time.Time

	window time.Duration
	limit  int
	now    func() time.Time
}

// NewLimiter constructs a [Limiter] using the wall clock.
func NewLimiter(cfg config.RateLimit) *Limiter {
	return NewLimiterWithClock(cfg, time.Now)
}

// NewLimiterWithClock constructs a [Limiter] with an injected clock.
// Intended for tests that need to advance time deterministically.
func NewLimiterWithClock(cfg config.RateLimit, now func() time.Time) *Limiter {
	return &Limiter{
		entries: make(map[int64][]time.Time),
		window:  cfg.Window,
		limit:   cfg.Limit,
		now:     now,
	}
}

// Allow reports whether the user may proceed with one more request.
// Timestamps older than now-window are discarded first; if the remaining
// count is at or above the limit the request is rejected, otherwise the new
// timestamp is recorded.
func (l *Limiter) Allow(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	kept := pruneWindow(l.entries[userID], now.Add(-l.window))

	if len(kept) >= l.limit {
		l.entries[userID] = kept
		return false
	}

	l.entries[userID] = append(kept, now)
	return true
}

// Reset drops all recorded requests for the user.
func (l *Limiter) Reset(userID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.entries, userID)
}

// Prune removes users whose entire window has elapsed and returns how many
// entries were dropped. Called periodically by the background sweeper so
// the map does not grow with every user id ever seen.
func (l *Limiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	dropped := 0
	for userID, window := range l.entries {
		kept := pruneWindow(window, cutoff)
		if len(kept) == 0 {
			delete(l.entries, userID)
			dropped++
			continue
		}
		l.entries[userID] = kept
	}

	return dropped
}

// pruneWindow keeps only timestamps strictly after cutoff, reusing the
// backing array.
func pruneWindow(window []time.Time, cutoff time.Time) []time.Time {
	kept := window[:0]
	for _, ts := range window {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}
