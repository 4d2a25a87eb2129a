// Package ratelimit throttles authentication attempts per client.
//
// Counters live in process memory. Several server instances behind a load
// balancer each enforce their own limit.
package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultWindow      = 15 * time.Minute
	DefaultMaxAttempts = 5
)

type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window attempt counter keyed by client id.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window

	window      time.Duration
	maxAttempts int
	now         func() time.Time
}

// NewLimiter returns a Limiter; non-positive arguments fall back to the
// defaults.
func NewLimiter(w time.Duration, maxAttempts int) *Limiter {
	if w <= 0 {
		w = DefaultWindow
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Limiter{
		windows:     make(map[string]*window),
		window:      w,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Allow records an attempt for clientID and reports whether it may proceed.
// A rejected attempt does not count against the client.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[clientID]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.window)}
		l.windows[clientID] = w
	}

	if w.count >= l.maxAttempts {
		return false
	}

	w.count++
	return true
}

// Prune forgets clients whose window has elapsed and returns how many were
// removed.
func (l *Limiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, id)
			removed++
		}
	}
	return removed
}

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration {
	return l.window
}
