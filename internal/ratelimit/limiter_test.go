package ratelimit

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestLimiter(limits map[Category]Limit) (*Limiter, *time.Time) {
	l := New(limits, 0)
	current := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestLimiterAllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(map[Category]Limit{
		CategoryQuery: {Requests: 3, Window: time.Minute},
	})

	for i := 0; i < 3; i++ {
		if err := l.Allow("parent-1", CategoryQuery); err != nil {
			t.Fatalf("request %d: unexpected error: %v", i+1, err)
		}
	}

	err := l.Allow("parent-1", CategoryQuery)
	var exceeded *LimitExceededError
	if !errors.As(err, &exceeded) {
		t.Fatalf("expected LimitExceededError, got %v", err)
	}
	if exceeded.Category != CategoryQuery {
		t.Errorf("expected query category, got %s", exceeded.Category)
	}
	if exceeded.RetryAfter <= 0 || exceeded.RetryAfter > time.Minute {
		t.Errorf("unexpected retry-after: %s", exceeded.RetryAfter)
	}
}

func TestLimiterWindowExpiryResets(t *testing.T) {
	l, now := newTestLimiter(map[Category]Limit{
		CategoryQuery: {Requests: 2, Window: time.Minute},
	})

	l.Allow("parent-1", CategoryQuery)
	l.Allow("parent-1", CategoryQuery)
	if err := l.Allow("parent-1", CategoryQuery); err == nil {
		t.Fatal("expected rejection at limit")
	}

	// Advance past the window: both stamps expire and the quota is fresh.
	*now = now.Add(time.Minute + time.Second)
	if err := l.Allow("parent-1", CategoryQuery); err != nil {
		t.Fatalf("unexpected error after window expiry: %v", err)
	}
}

func TestLimiterPartialWindowSlide(t *testing.T) {
	l, now := newTestLimiter(map[Category]Limit{
		CategoryQuery: {Requests: 2, Window: time.Minute},
	})

	l.Allow("parent-1", CategoryQuery)
	*now = now.Add(40 * time.Second)
	l.Allow("parent-1", CategoryQuery)

	// The first stamp leaves the window after 60s; the second remains.
	*now = now.Add(25 * time.Second)
	if err := l.Allow("parent-1", CategoryQuery); err != nil {
		t.Fatalf("unexpected error after first stamp expired: %v", err)
	}
	if err := l.Allow("parent-1", CategoryQuery); err == nil {
		t.Fatal("expected rejection, two stamps still in window")
	}
}

func TestLimiterIsolation(t *testing.T) {
	l, _ := newTestLimiter(map[Category]Limit{
		CategoryQuery: {Requests: 1, Window: time.Minute},
		CategoryVoice: {Requests: 1, Window: time.Minute},
	})

	if err := l.Allow("parent-1", CategoryQuery); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Other users and other categories have independent quotas.
	if err := l.Allow("parent-2", CategoryQuery); err != nil {
		t.Errorf("other user should not be affected: %v", err)
	}
	if err := l.Allow("parent-1", CategoryVoice); err != nil {
		t.Errorf("other category should not be affected: %v", err)
	}
	if err := l.Allow("parent-1", CategoryQuery); err == nil {
		t.Error("expected rejection for exhausted quota")
	}
}

func TestLimiterConcurrentFirstRequests(t *testing.T) {
	l, _ := newTestLimiter(map[Category]Limit{
		CategoryQuery: {Requests: 8, Window: time.Minute},
	})

	// All goroutines race on the same fresh key, so every one of them may
	// observe a missing window. Exactly the quota must be admitted.
	const attempts = 64
	var wg sync.WaitGroup
	var admitted atomic.Int64

	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if err := l.Allow("parent-1", CategoryQuery); err == nil {
				admitted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := admitted.Load(); got != 8 {
		t.Errorf("expected exactly 8 admissions, got %d", got)
	}
}

func TestLimiterUnknownCategory(t *testing.T) {
	l, _ := newTestLimiter(map[Category]Limit{})
	if err := l.Allow("parent-1", CategoryHistory); err != nil {
		t.Fatalf("unconfigured category should pass: %v", err)
	}
}

func TestLimiterRejectionDoesNotConsume(t *testing.T) {
	l, now := newTestLimiter(map[Category]Limit{
		CategoryQuery: {Requests: 1, Window: time.Minute},
	})

	l.Allow("parent-1", CategoryQuery)
	for i := 0; i < 5; i++ {
		if err := l.Allow("parent-1", CategoryQuery); err == nil {
			t.Fatal("expected rejection")
		}
	}

	// Rejected attempts must not extend the window.
	*now = now.Add(time.Minute + time.Second)
	if err := l.Allow("parent-1", CategoryQuery); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
