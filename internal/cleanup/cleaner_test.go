package cleanup

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/terra-clan/maturity-engine/internal/ratelimit"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep(time.Time) int {
	s.calls.Add(1)
	return 0
}

func TestCleanupSweepsMemoryStore(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	ctx := context.Background()
	store.Hit(ctx, "a", time.Millisecond)
	store.Hit(ctx, "b", time.Hour)

	c := NewCleaner(store, time.Minute)
	c.now = func() time.Time { return time.Now().Add(time.Second) }

	if removed := c.cleanup(); removed != 1 {
		t.Errorf("expected 1 expired window removed, got %d", removed)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 window left, got %d", store.Len())
	}
}

func TestCleanerRunsUntilCancelled(t *testing.T) {
	sweeper := &countingSweeper{}
	c := NewCleaner(sweeper, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for sweeper.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if sweeper.calls.Load() < 2 {
		t.Errorf("expected at least 2 sweeps, got %d", sweeper.calls.Load())
	}
}

func TestDefaultInterval(t *testing.T) {
	if c := NewCleaner(&countingSweeper{}, 0); c.interval != time.Minute {
		t.Errorf("expected default interval of one minute, got %v", c.interval)
	}
}
