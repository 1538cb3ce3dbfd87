package quizgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(cfg Config) (*RateLimiter, *fakeClock) {
	clock := newFakeClock()
	l := NewRateLimiter(cfg)
	l.now = clock.now
	return l, clock
}

func TestRateLimiterFreshStart(t *testing.T) {
	l, _ := newTestLimiter(DefaultConfig())

	st := l.Check()
	require.False(t, st.Limited)
	require.Zero(t, st.Wait)
	require.Equal(t, 15, st.RequestsRemaining)
}

func TestRateLimiterMinInterval(t *testing.T) {
	l, clock := newTestLimiter(DefaultConfig())

	l.Record()

	st := l.Check()
	require.True(t, st.Limited)
	require.Equal(t, 4*time.Second, st.Wait)

	clock.advance(3 * time.Second)
	st = l.Check()
	require.True(t, st.Limited)
	require.Equal(t, time.Second, st.Wait)

	clock.advance(time.Second)
	st = l.Check()
	require.False(t, st.Limited)
}

func TestRateLimiterWindowExhaustion(t *testing.T) {
	l, clock := newTestLimiter(DefaultConfig())

	for i := range 15 {
		l.Record()
		if i < 14 {
			clock.advance(4 * time.Second)
		}
	}

	st := l.Check()
	require.True(t, st.Limited)
	require.Equal(t, 0, st.RequestsRemaining)
	// 15 records spaced 4s apart: 56s into the window, 4s remain.
	require.Equal(t, 4*time.Second, st.Wait)
	require.Equal(t, st.WindowReset, st.Wait)
}

func TestRateLimiterWindowReset(t *testing.T) {
	l, clock := newTestLimiter(DefaultConfig())

	for i := range 15 {
		l.Record()
		if i < 14 {
			clock.advance(4 * time.Second)
		}
	}
	require.True(t, l.Check().Limited)

	// Push past the window start plus the window length.
	clock.advance(10 * time.Second)
	st := l.Check()
	require.False(t, st.Limited)
	require.Equal(t, 15, st.RequestsRemaining)
}

func TestRateLimiterIdleReset(t *testing.T) {
	l, clock := newTestLimiter(DefaultConfig())

	for range 5 {
		l.Record()
		clock.advance(4 * time.Second)
	}

	clock.advance(2 * time.Minute)
	st := l.Check()
	require.False(t, st.Limited)
	require.Equal(t, 15, st.RequestsRemaining)
}

func TestRateLimiterFailedCallStillCounts(t *testing.T) {
	// Record happens before the request, so the slot is spent whether
	// the call succeeds or not.
	l, _ := newTestLimiter(DefaultConfig())

	l.Record()
	st := l.Check()
	require.Equal(t, 14, st.RequestsRemaining)
}

func TestRateLimiterMinIntervalSurvivesReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window = 5 * time.Second
	l, clock := newTestLimiter(cfg)

	l.Record()
	clock.advance(4 * time.Second)
	l.Record()
	clock.advance(2 * time.Second)

	// The window has expired so the counter resets, but the last
	// request was only 2s ago and the 4s gap still applies.
	st := l.Check()
	require.True(t, st.Limited)
	require.Equal(t, 2*time.Second, st.Wait)
	require.Equal(t, cfg.RequestsPerWindow, st.RequestsRemaining)
}
