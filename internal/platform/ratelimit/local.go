package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type localEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Local is a per-key token bucket limiter. Idle keys are dropped by Sweep.
type Local struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	rate    rate.Limit
	burst   int
	now     func() time.Time
}

// NewLocal allows perWindow requests per window for each key, with bursts up
// to perWindow.
func NewLocal(perWindow int, window time.Duration) *Local {
	if perWindow <= 0 {
		perWindow = 1
	}
	return &Local{
		entries: make(map[string]*localEntry),
		rate:    rate.Every(window / time.Duration(perWindow)),
		burst:   perWindow,
		now:     time.Now,
	}
}

func (l *Local) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.entries[key] = e
	}
	e.lastAccess = now
	limiter := e.limiter
	l.mu.Unlock()
	return limiter.AllowN(now, 1), nil
}

// Sweep removes keys not seen for idle.
func (l *Local) Sweep(idle time.Duration) int {
	threshold := l.now().Add(-idle)
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for k, e := range l.entries {
		if e.lastAccess.Before(threshold) {
			delete(l.entries, k)
			n++
		}
	}
	return n
}

// StartSweeper runs Sweep every interval until ctx is done.
func (l *Local) StartSweeper(ctx context.Context, interval, idle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Sweep(idle)
			}
		}
	}()
}
