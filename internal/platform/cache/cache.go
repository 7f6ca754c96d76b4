// Package cache provides a tag-aware cache seam with memory and redis backends.
// Entries carry logical tags so whole groups can be evicted by label instead
// of by exact key
package cache

import (
	"context"
	"time"
)

// TagCache is the surface consumers mount against
// implementations must be safe for concurrent use
type TagCache interface {
	// Get returns the value for key, ok=false on miss or expiry
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key with a ttl (0 = no expiry) and optional tags
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error

	// Delete removes a single key
	Delete(ctx context.Context, key string) error

	// InvalidateTag evicts every key carrying tag and returns how many went
	InvalidateTag(ctx context.Context, tag string) (int, error)

	// Close releases backend resources
	Close() error
}

// InvalidateTags evicts several tags and sums the evicted key counts
// per-tag failures are collected so one bad tag does not mask the rest
func InvalidateTags(ctx context.Context, c TagCache, tags []string) (int, []error) {
	var total int
	var errs []error
	for _, tag := range tags {
		n, err := c.InvalidateTag(ctx, tag)
		total += n
		if err != nil {
			errs = append(errs, err)
		}
	}
	return total, errs
}
