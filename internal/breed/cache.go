package breed

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Cache stores the most recent breed list.
type Cache interface {
	Get(ctx context.Context) (names []string, ok bool, err error)
	Set(ctx context.Context, names []string, ttl time.Duration) error
}

var _ Cache = (*MemoryCache)(nil)

type MemoryCache struct {
	mu      sync.RWMutex
	names   []string
	expires time.Time
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context) ([]string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.names == nil || !c.now().Before(c.expires) {
		return nil, false, nil
	}

	return slices.Clone(c.names), true, nil
}

func (c *MemoryCache) Set(_ context.Context, names []string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.names = slices.Clone(names)
	c.expires = c.now().Add(ttl)

	return nil
}
