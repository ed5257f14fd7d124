package cache

import (
	"context"
	"time"
)

// NullCache stores nothing; every lookup misses, so each diagram is
// rendered afresh. The CLI uses it for --no-cache or when the cache
// directory is unavailable, and the server uses it when no Redis URL is
// configured.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a NullCache as a Cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
