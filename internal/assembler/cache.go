package assembler

import (
	"container/list"
	"sync"

	"autodash/domain/core"
	"autodash/domain/dashboard"
)

// lruCache is an explicit bounded map with recency tracking for generated
// dashboards, keyed by dataset id. Entries are invalidated whenever the
// source dataset is reprocessed, so a reprocess never serves a stale
// dashboard.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[core.DatasetID]*list.Element
}

type cacheEntry struct {
	key   core.DatasetID
	value *dashboard.Dashboard
}

func newLRUCache(capacity int) *lruCache {
	if capacity < 1 {
		capacity = 1
	}
	return &lruCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[core.DatasetID]*list.Element, capacity),
	}
}

func (c *lruCache) get(key core.DatasetID) *dashboard.Dashboard {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).value
}

func (c *lruCache) put(key core.DatasetID, value *dashboard.Dashboard) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).value = value
		c.order.MoveToFront(elem)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, value: value})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *lruCache) invalidate(key core.DatasetID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.Remove(elem)
		delete(c.entries, key)
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
