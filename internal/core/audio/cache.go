package audio

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/pkg/kv"
)

// Cache maps unit keys to their current handle. A replaced handle's file
// is released.
type Cache struct {
	store   *Store
	entries *kv.Store[analysis.Key, Handle]
	log     zerolog.Logger
}

// NewCache creates an empty cache backed by store.
func NewCache(store *Store, log zerolog.Logger) *Cache {
	return &Cache{
		store:   store,
		entries: kv.New[analysis.Key, Handle](),
		log:     log,
	}
}

// Get returns the handle cached for key.
func (c *Cache) Get(key analysis.Key) (Handle, bool) {
	return c.entries.Get(key)
}

// Put caches h under its key, releasing the handle it replaces.
func (c *Cache) Put(h Handle) {
	old, ok := c.entries.Swap(h.Key, h)
	if ok && old.Path != h.Path {
		c.release(old)
	}
}

// Delete removes and releases the handle for key.
func (c *Cache) Delete(key analysis.Key) {
	if old, ok := c.entries.Delete(key); ok {
		c.release(old)
	}
}

// Clear releases every cached handle.
func (c *Cache) Clear() {
	for _, h := range c.entries.Drain() {
		c.release(h)
	}
}

// Len returns the number of cached handles.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Release frees a handle that never made it into the cache.
func (c *Cache) Release(h Handle) {
	c.release(h)
}

func (c *Cache) release(h Handle) {
	if err := c.store.Release(h); err != nil {
		c.log.Warn().Err(err).Str("key", string(h.Key)).Msg("failed to release audio")
	}
}
