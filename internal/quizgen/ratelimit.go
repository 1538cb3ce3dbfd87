package quizgen

import (
	"sync"
	"time"
)

// LimitStatus is a snapshot of the limiter's view of the current moment.
type LimitStatus struct {
	// Limited reports whether a new request should wait.
	Limited bool

	// Wait is how long the caller should wait before proceeding.
	// Zero when not limited.
	Wait time.Duration

	// RequestsRemaining is the unused quota in the current window.
	RequestsRemaining int

	// WindowReset is the time until the current window expires.
	// Zero when no window is open.
	WindowReset time.Duration
}

// RateLimiter tracks request cadence against the provider quota.
// It is advisory state, not a blocking gate: Record never refuses, and a
// caller that ignores Limited is allowed to proceed. Callers are expected
// to wait out Status.Wait before recording.
//
// The mutex guards the fields for memory safety only. Two concurrent
// callers can both observe an open slot and both be admitted when the
// window resets between their checks; that race reflects true shared
// quota and is accepted rather than serialized.
type RateLimiter struct {
	mu  sync.Mutex
	cfg Config

	windowStart time.Time
	count       int
	last        time.Time

	now func() time.Time
}

// NewRateLimiter creates a limiter for the given configuration.
func NewRateLimiter(cfg Config) *RateLimiter {
	return &RateLimiter{cfg: cfg, now: time.Now}
}

// Check evaluates the quota for a request issued right now.
// It never fails; the window resets lazily during evaluation, there is
// no background timer.
func (l *RateLimiter) Check() LimitStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.maybeReset(now)

	st := LimitStatus{
		RequestsRemaining: l.cfg.RequestsPerWindow - l.count,
	}
	if st.RequestsRemaining < 0 {
		st.RequestsRemaining = 0
	}
	if l.count > 0 {
		st.WindowReset = l.windowStart.Add(l.cfg.Window).Sub(now)
		if st.WindowReset < 0 {
			st.WindowReset = 0
		}
	}

	// Window exhaustion is evaluated before the minimum-interval check:
	// it yields the longer wait and the more informative message.
	if l.count >= l.cfg.RequestsPerWindow {
		st.Limited = true
		st.Wait = st.WindowReset
		return st
	}

	if !l.last.IsZero() {
		if since := now.Sub(l.last); since < l.cfg.MinInterval {
			st.Limited = true
			st.Wait = l.cfg.MinInterval - since
		}
	}

	return st
}

// Record consumes a quota slot. Callers record before issuing the
// request so that even a failed call uses up attention.
func (l *RateLimiter) Record() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.maybeReset(now)

	if l.count == 0 {
		l.windowStart = now
	}
	l.count++
	l.last = now
}

// maybeReset zeroes the counter once the window has elapsed or gone
// idle. Caller must hold l.mu.
func (l *RateLimiter) maybeReset(now time.Time) {
	expired := !l.windowStart.IsZero() && !now.Before(l.windowStart.Add(l.cfg.Window))
	idle := !l.last.IsZero() && now.Sub(l.last) > l.cfg.Window
	if expired || idle {
		l.count = 0
		l.windowStart = time.Time{}
	}
}
