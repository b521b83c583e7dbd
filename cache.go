package neuron

import (
	"sync"
	"time"
)

// ContentCache is an in-memory cache of the content listing with TTL. It
// serves the public listing, feed, and sitemap; gate decisions always go to
// the live ledger, so caching items never caches access.
type ContentCache struct {
	mu      sync.RWMutex
	items   []ContentItem
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewContentCache creates a ContentCache backed by the given Store.
func NewContentCache(s *Store, ttl time.Duration) *ContentCache {
	return &ContentCache{store: s, ttl: ttl}
}

func (c *ContentCache) valid() bool {
	return c.items != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// ensureLoaded returns the cached listing after ensuring freshness. A read
// lock is tried first; the write lock is only taken when a reload is needed.
func (c *ContentCache) ensureLoaded() ([]ContentItem, error) {
	c.mu.RLock()
	if c.valid() {
		items := c.items
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.items, nil
	}
	items, err := c.store.ListContent()
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []ContentItem{}
	}
	c.items = items
	c.fetched = time.Now()
	return c.items, nil
}

// ListContent returns all items, most recent first.
func (c *ContentCache) ListContent() ([]ContentItem, error) {
	return c.ensureLoaded()
}

// ListPublic returns only public items, most recent first.
func (c *ContentCache) ListPublic() ([]ContentItem, error) {
	items, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	var public []ContentItem
	for _, item := range items {
		if item.IsPublic {
			public = append(public, item)
		}
	}
	return public, nil
}

// GetContent returns a single item by ID from the cache.
func (c *ContentCache) GetContent(id string) (ContentItem, error) {
	items, err := c.ensureLoaded()
	if err != nil {
		return ContentItem{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return ContentItem{}, ErrNotFound
}
