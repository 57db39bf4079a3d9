package bulletin

import (
	"sync"
	"time"
)

// ExportCache keeps recently produced export files keyed by session,
// snapshot version and format. An unchanged bulletin exported twice is
// served from memory.
type ExportCache struct {
	mu      sync.RWMutex
	entries map[exportKey]cachedExport
	ttl     time.Duration
}

type exportKey struct {
	session string
	version uint64
	format  string
}

type cachedExport struct {
	data    []byte
	fetched time.Time
}

// NewExportCache creates an ExportCache whose entries live for ttl.
func NewExportCache(ttl time.Duration) *ExportCache {
	return &ExportCache{entries: make(map[exportKey]cachedExport), ttl: ttl}
}

func (c *ExportCache) valid(e cachedExport) bool {
	return e.data != nil && time.Since(e.fetched) < c.ttl
}

// Get returns the cached file for the snapshot, if still fresh.
func (c *ExportCache) Get(session string, version uint64, format string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[exportKey{session, version, format}]
	c.mu.RUnlock()
	if !ok || !c.valid(e) {
		return nil, false
	}
	return e.data, true
}

// Put stores data and drops every older entry of the same session, which
// can no longer be requested.
func (c *ExportCache) Put(session string, version uint64, format string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if (k.session == session && k.version < version) || !c.valid(e) {
			delete(c.entries, k)
		}
	}
	c.entries[exportKey{session, version, format}] = cachedExport{data: data, fetched: time.Now()}
}

// Len returns the number of cached files.
func (c *ExportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
