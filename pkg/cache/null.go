package cache

import (
	"context"
	"time"
)

// NullCache never stores anything. Every lookup misses, so the pipeline
// recolors on each run. It backs --no-cache and tests that must not see
// results from earlier runs.
type NullCache struct{}

// NewNullCache returns a cache with no storage.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error { return nil }
func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
