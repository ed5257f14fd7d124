// Package cache stores rendered diagrams so that repeated renders of the
// same tree skip Graphviz and rsvg-convert.
//
// Entries are opaque byte slices addressed by string keys. [DiagramKey]
// derives a key from the inputs that determine the output, so callers never
// build keys by hand:
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.DiagramKey(tree.Format(t), "svg", opts)
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
//
// [FileCache] backs the CLI, [RedisCache] backs the server, and [NullCache]
// disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a key-value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. An expired or
	// unreadable entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Fetch returns the entry at key. On a miss it calls fill, stores the result
// with ttl and returns it. Read errors count as misses and write errors are
// dropped; only fill can fail the call. hit reports whether fill was
// skipped.
func Fetch(ctx context.Context, c Cache, key string, ttl time.Duration, fill func() ([]byte, error)) (data []byte, hit bool, err error) {
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, err = fill()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, data, ttl)
	return data, false, nil
}
