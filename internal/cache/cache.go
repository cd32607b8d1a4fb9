package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Entry is one cached rendered response
type Entry struct {
	Status      int
	ContentType string
	Body        []byte
}

// PageCache is a process-wide cache of rendered pages, keyed by request
// path+query. Entries are evicted purely by TTL expiry; writes to the
// underlying data never invalidate it. Clear is the only way to force
// immediate consistency.
type PageCache struct {
	ttl   time.Duration
	store *gocache.Cache
}

// New creates a PageCache with the given TTL
func New(ttl time.Duration) *PageCache {
	return &PageCache{
		ttl:   ttl,
		store: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached entry for key, if present and not expired
func (c *PageCache) Get(key string) (*Entry, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	entry, ok := v.(*Entry)
	return entry, ok
}

// Set stores a rendered response under key for the configured TTL
func (c *PageCache) Set(key string, entry *Entry) {
	c.store.Set(key, entry, c.ttl)
}

// Clear drops every cached entry. Administrative action.
func (c *PageCache) Clear() {
	c.store.Flush()
}

// TTL returns the configured entry lifetime
func (c *PageCache) TTL() time.Duration {
	return c.ttl
}
