package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// memAttemptLog mirrors the sorted-set semantics in memory: trim everything
// at or before the cutoff, append the new attempt, count what remains.
type memAttemptLog struct {
	attempts map[string][]int64
}

func newMemAttemptLog() *memAttemptLog {
	return &memAttemptLog{attempts: map[string][]int64{}}
}

func (m *memAttemptLog) record(_ context.Context, key string, at, cutoff int64, _ time.Duration) (int64, error) {
	kept := m.attempts[key][:0]
	for _, ts := range m.attempts[key] {
		if ts > cutoff {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, at)
	m.attempts[key] = kept
	return int64(len(kept)), nil
}

type failingAttemptLog struct{}

func (failingAttemptLog) record(context.Context, string, int64, int64, time.Duration) (int64, error) {
	return 0, errors.New("connection refused")
}

func testLimiter(log attemptLog, limit int, window time.Duration, start time.Time) (*LoginLimiter, *time.Time) {
	at := start
	l := &LoginLimiter{log: log, limit: limit, window: window, logger: zerolog.Nop()}
	l.now = func() time.Time { return at }
	return l, &at
}

func TestAllow_SixthAttemptDenied(t *testing.T) {
	l, at := testLimiter(newMemAttemptLog(), 5, 15*time.Minute, time.Unix(1000, 0))

	for i := 0; i < 5; i++ {
		ok, err := l.Allow(context.Background(), "10.0.0.1")
		if err != nil || !ok {
			t.Fatalf("attempt %d: expected allowed, got ok=%v err=%v", i+1, ok, err)
		}
		*at = at.Add(time.Second)
	}

	ok, err := l.Allow(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ok {
		t.Fatalf("sixth attempt within the window must be denied")
	}
}

func TestAllow_OldAttemptsAgeOut(t *testing.T) {
	l, at := testLimiter(newMemAttemptLog(), 5, 15*time.Minute, time.Unix(1000, 0))

	for i := 0; i < 5; i++ {
		if ok, _ := l.Allow(context.Background(), "10.0.0.1"); !ok {
			t.Fatalf("attempt %d: expected allowed", i+1)
		}
		*at = at.Add(time.Second)
	}

	// Past the window the early attempts no longer count.
	*at = at.Add(15 * time.Minute)
	ok, err := l.Allow(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !ok {
		t.Fatalf("expected the window to have slid past the old attempts")
	}
}

func TestAllow_OriginsCountedSeparately(t *testing.T) {
	l, _ := testLimiter(newMemAttemptLog(), 1, 15*time.Minute, time.Unix(1000, 0))

	if ok, _ := l.Allow(context.Background(), "10.0.0.1"); !ok {
		t.Fatalf("first origin should be allowed")
	}
	if ok, _ := l.Allow(context.Background(), "10.0.0.2"); !ok {
		t.Fatalf("a different origin must have its own budget")
	}
	if ok, _ := l.Allow(context.Background(), "10.0.0.1"); ok {
		t.Fatalf("first origin exhausted its budget")
	}
}

func TestAllow_FailsOpen(t *testing.T) {
	l, _ := testLimiter(failingAttemptLog{}, 5, 15*time.Minute, time.Unix(1000, 0))

	ok, err := l.Allow(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !ok {
		t.Fatalf("store failure must not lock users out")
	}
}

func TestAllow_EmptyOrigin(t *testing.T) {
	log := newMemAttemptLog()
	l, _ := testLimiter(log, 5, 15*time.Minute, time.Unix(1000, 0))

	ok, err := l.Allow(context.Background(), "")
	if err != nil || !ok {
		t.Fatalf("expected allowed, got ok=%v err=%v", ok, err)
	}
	if len(log.attempts) != 0 {
		t.Fatalf("an unattributable attempt must not be recorded")
	}
}
