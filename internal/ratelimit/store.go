// Package ratelimit implements fixed-window request counting on top of an
// injected key-expiry store (Redis in production, memory otherwise).
package ratelimit

import (
	"context"
	"time"
)

// Store counts hits per key inside an expiring window
type Store interface {
	// Hit increments the counter for key and returns the new count.
	// The counter expires window after the first hit.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)

	// Ping checks if the store is available
	Ping(ctx context.Context) error
}
