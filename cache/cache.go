package cache

import (
	"context"
	"time"
)

// PageCache is a time-boxed cache for rendered page bodies. Entries expire
// only by TTL or an explicit Clear; nothing invalidates them on writes to
// the underlying data.
type PageCache interface {
	// Get returns the cached body for key. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// SetWithTTL stores body under key for the given time-to-live.
	SetWithTTL(ctx context.Context, key string, body []byte, ttl time.Duration) error

	// Clear drops every cached page.
	Clear(ctx context.Context) error
}
