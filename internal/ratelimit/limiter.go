package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// Limiter is a fixed-window request counter keyed by client address. All
// counter mutations happen under one mutex so a race can never under-count:
// the increment happens before the quota check, which makes the limiter fail
// closed.
type Limiter struct {
	mu      sync.Mutex
	quota   int
	window  time.Duration
	windows map[string]*window

	lastSweep time.Time
	now       func() time.Time
}

func New(quota int, windowSize time.Duration) *Limiter {
	return &Limiter{
		quota:   quota,
		window:  windowSize,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records one request for key and reports whether it fits the quota for
// the current window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		w = &window{start: now}
		l.windows[key] = w
	}

	w.count++
	return w.count <= l.quota
}

// sweep drops expired windows so the key map does not grow with every client
// address ever seen. Runs at most once per window, under the caller's lock.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, key)
		}
	}
}
