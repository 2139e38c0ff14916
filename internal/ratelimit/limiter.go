package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// Category names a family of operations that shares one quota.
type Category string

const (
	CategoryQuery    Category = "query"
	CategoryVoice    Category = "voice"
	CategoryDocument Category = "document"
	CategoryHistory  Category = "history"
)

// Limit is a request quota over a sliding window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// LimitExceededError reports which quota a caller exhausted and when the
// oldest counted request falls out of the window.
type LimitExceededError struct {
	Category   Category
	RetryAfter time.Duration
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s, retry after %s", e.Category, e.RetryAfter.Round(time.Second))
}

// Limiter enforces per-user sliding-window quotas plus an instance-wide
// smoothing limit. Quotas track exact request timestamps so a burst of
// limit requests is admitted and request limit+1 is rejected until the
// oldest timestamp leaves the window.
type Limiter struct {
	limits  map[Category]Limit
	windows *expirable.LRU[string, *window]
	global  *rate.Limiter

	// mu serializes window creation so two concurrent first requests for
	// the same key cannot each install a fresh window and lose a stamp.
	mu sync.Mutex

	now func() time.Time
}

type window struct {
	mu     sync.Mutex
	stamps []time.Time
}

// New creates a limiter for the given per-category quotas. Idle windows are
// evicted after twice the longest quota window.
func New(limits map[Category]Limit, globalPerSecond int) *Limiter {
	var longest time.Duration
	for _, l := range limits {
		if l.Window > longest {
			longest = l.Window
		}
	}
	if longest == 0 {
		longest = time.Minute
	}

	var global *rate.Limiter
	if globalPerSecond > 0 {
		global = rate.NewLimiter(rate.Limit(globalPerSecond), globalPerSecond)
	}

	return &Limiter{
		limits:  limits,
		windows: expirable.NewLRU[string, *window](10000, nil, 2*longest),
		global:  global,
		now:     time.Now,
	}
}

// Allow records one request for the user in the category, or returns a
// LimitExceededError without recording it.
func (l *Limiter) Allow(userID string, category Category) error {
	limit, ok := l.limits[category]
	if !ok || limit.Requests <= 0 {
		return nil
	}

	if l.global != nil && !l.global.Allow() {
		return &LimitExceededError{Category: category, RetryAfter: time.Second}
	}

	w := l.windowFor(userID + ":" + string(category))

	now := l.now()
	cutoff := now.Add(-limit.Window)

	w.mu.Lock()
	defer w.mu.Unlock()

	// Prune timestamps that fell out of the window before counting.
	kept := w.stamps[:0]
	for _, ts := range w.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	w.stamps = kept

	if len(w.stamps) >= limit.Requests {
		retryAfter := w.stamps[0].Add(limit.Window).Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return &LimitExceededError{Category: category, RetryAfter: retryAfter}
	}

	w.stamps = append(w.stamps, now)
	return nil
}

// windowFor returns the tracking window for the key, creating it under the
// limiter lock with a second lookup so concurrent creators converge on one
// window.
func (l *Limiter) windowFor(key string) *window {
	if w, ok := l.windows.Get(key); ok {
		return w
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if w, ok := l.windows.Get(key); ok {
		return w
	}
	w := &window{}
	l.windows.Add(key, w)
	return w
}
