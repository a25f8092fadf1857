package pagestore

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
)

// CachedStore wraps a Store with a read-through page cache. The
// B+tree core never caches nodes itself (it operates on one page
// buffer at a time); caching, if wanted, is the store's job.
type CachedStore struct {
	backing Store
	cache   *ristretto.Cache[int64, []byte]
}

// NewCachedStore wraps backing with an in-memory page cache sized for
// roughly maxPages hot pages.
func NewCachedStore(backing Store, maxPages int64) (*CachedStore, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[int64, []byte]{
		NumCounters: maxPages * 10,
		MaxCost:     maxPages * PageSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("pagestore: create page cache: %w", err)
	}
	return &CachedStore{backing: backing, cache: cache}, nil
}

// Read implements Store, serving from cache when possible.
func (c *CachedStore) Read(pid int64, buf []byte) error {
	if len(buf) != PageSize {
		return fmt.Errorf("pagestore: read buffer must be %d bytes, got %d", PageSize, len(buf))
	}
	if page, ok := c.cache.Get(pid); ok {
		copy(buf, page)
		return nil
	}
	if err := c.backing.Read(pid, buf); err != nil {
		return err
	}
	page := make([]byte, PageSize)
	copy(page, buf)
	c.cache.Set(pid, page, PageSize)
	return nil
}

// Write implements Store, writing through to the backing store and
// refreshing the cached copy.
func (c *CachedStore) Write(pid int64, buf []byte) error {
	if err := c.backing.Write(pid, buf); err != nil {
		return err
	}
	page := make([]byte, PageSize)
	copy(page, buf)
	c.cache.Set(pid, page, PageSize)
	return nil
}

// EndPid implements Store.
func (c *CachedStore) EndPid() int64 {
	return c.backing.EndPid()
}

// Close implements Store, shutting down the cache and closing the
// backing store. Writes already went through to the backing store, so
// nothing is flushed here.
func (c *CachedStore) Close() error {
	c.cache.Close()
	return c.backing.Close()
}
