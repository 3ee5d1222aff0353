package cleanup

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper drops expired entries and reports how many it removed
type Sweeper interface {
	Sweep(now time.Time) int
}

// Cleaner periodically sweeps expired rate-limit windows
type Cleaner struct {
	sweeper  Sweeper
	interval time.Duration
	now      func() time.Time
}

// NewCleaner creates a new cleanup worker
func NewCleaner(sweeper Sweeper, interval time.Duration) *Cleaner {
	if interval <= 0 {
		interval = time.Minute
	}

	return &Cleaner{
		sweeper:  sweeper,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// run is the main loop for the cleanup worker
func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup runs one sweep and returns the number of removed entries
func (c *Cleaner) cleanup() int {
	removed := c.sweeper.Sweep(c.now())
	if removed > 0 {
		slog.Debug("expired rate limit windows removed", "count", removed)
	}
	return removed
}
