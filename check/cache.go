package check

import (
	"crypto/sha256"
	"sync"
)

type cacheEntry struct {
	hash    [sha256.Size]byte
	grammar string
	report  Report
}

// Cache remembers the report of each file together with a hash of the
// source it was produced from, so that a file whose content has not
// changed is not parsed again. It is safe for concurrent use.
type Cache struct {
	mutex   sync.RWMutex
	entries map[string]cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Get returns the cached report for path if it was produced by grammar
// from exactly src.
func (c *Cache) Get(path, grammar string, src []byte) (Report, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.entries[path]
	if !exists || entry.grammar != grammar || entry.hash != sha256.Sum256(src) {
		return Report{}, false
	}
	return entry.report, true
}

// Set stores the report produced by grammar from src.
func (c *Cache) Set(path, grammar string, src []byte, report Report) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[path] = cacheEntry{
		hash:    sha256.Sum256(src),
		grammar: grammar,
		report:  report,
	}
}

// Invalidate drops the entry for path.
func (c *Cache) Invalidate(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, path)
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}
