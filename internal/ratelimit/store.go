// Package ratelimit provides fixed-window request counters keyed by client.
package ratelimit

import (
	"context"
	"time"
)

// CounterStore counts hits per key within a fixed window. Implementations
// must make Increment atomic: the first hit on a key both creates the
// counter and arms its expiry, so a counter can never outlive its window.
type CounterStore interface {
	// Increment records one hit for key and returns the total number of
	// hits in the key's current window, including this one. A new window
	// starts when the previous one has expired.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}
