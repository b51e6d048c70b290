package collector

import "sync"

// Cache memoizes resolved records per handle for the lifetime of one
// session. Failed resolutions are cached too, so a handle known to be bad
// is not hammered again within the same run. Entries never expire; the
// cache dies with the session.
type Cache struct {
	mu      sync.Mutex
	records map[string]*ProfileRecord
}

// NewCache creates an empty session cache.
func NewCache() *Cache {
	return &Cache{records: make(map[string]*ProfileRecord)}
}

// Get returns the cached record for a handle, if any.
func (c *Cache) Get(handle string) (*ProfileRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[handle]
	return rec, ok
}

// Put stores a record for a handle. Last write wins if the handle is
// re-resolved.
func (c *Cache) Put(handle string, rec *ProfileRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[handle] = rec
}

// Len returns the number of cached handles.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}
