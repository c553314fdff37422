// Package ratelimit implements the per-key request limiter that protects
// the sync API from abuse.
//
// State is kept in process memory and is lost on restart, which is
// acceptable for abuse protection. Window rollover happens lazily on
// access; no background timers are involved.
package ratelimit

import (
	"sync"
	"time"
)

// keyState tracks one identity key inside the current window.
type keyState struct {
	count     int
	resetTime time.Time
}

// Limiter bounds the number of requests a single identity key may issue
// within a fixed window. It is safe for concurrent use.
type Limiter struct {
	mu     sync.Mutex
	keys   map[string]*keyState
	limit  int
	window time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewLimiter constructs a Limiter allowing limit requests per window.
func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		keys:   make(map[string]*keyState),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records one request for key and reports whether it fits the
// current window. When the request is rejected, retryAfter is the time
// remaining until the window resets.
//
// The check-and-increment is atomic per key: concurrent callers sharing a
// key are admitted at most limit times per window.
func (l *Limiter) Allow(key string) (allowed bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	state, ok := l.keys[key]
	if !ok || !now.Before(state.resetTime) {
		l.keys[key] = &keyState{count: 1, resetTime: now.Add(l.window)}
		return true, 0
	}

	if state.count >= l.limit {
		return false, state.resetTime.Sub(now)
	}

	state.count++
	return true, 0
}

// Prune drops entries whose window has already expired. The HTTP layer
// calls it opportunistically so the key map does not grow without bound
// under key churn.
func (l *Limiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, state := range l.keys {
		if !now.Before(state.resetTime) {
			delete(l.keys, key)
		}
	}
}

// Len reports how many keys currently hold limiter state.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}
