package throttle

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether a key may perform one more request in the current window
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type window struct {
	start time.Time
	count int
}

// MemoryLimiter is a fixed-window counter local to the process
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]window
	now     func() time.Time
}

// NewMemoryLimiter allows limit requests per key in each period
func NewMemoryLimiter(limit int, period time.Duration) *MemoryLimiter {
	return &MemoryLimiter{limit: limit, period: period, windows: make(map[string]window), now: time.Now}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	start := now.Truncate(l.period)
	w := l.windows[key]
	if !w.start.Equal(start) {
		w = window{start: start}
		l.sweep(start)
	}
	if w.count >= l.limit {
		l.windows[key] = w
		return false, nil
	}
	w.count++
	l.windows[key] = w
	return true, nil
}

// sweep drops windows that ended before current so idle keys do not accumulate
func (l *MemoryLimiter) sweep(current time.Time) {
	for k, w := range l.windows {
		if w.start.Before(current) {
			delete(l.windows, k)
		}
	}
}
