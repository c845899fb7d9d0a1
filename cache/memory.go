package cache

import (
	"container/list"
	"context"
	"sync"

	"newscheck-backend/models"
)

// DefaultCapacity bounds the in-memory cache when no capacity is configured.
const DefaultCapacity = 128

type memoryEntry struct {
	key         Key
	explanation models.Explanation
}

// MemoryCache is a fixed-capacity LRU cache of explanations, scoped to the
// process lifetime and never invalidated.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[Key]*list.Element
}

// NewMemoryCache creates an in-memory cache. Non-positive capacity falls back
// to DefaultCapacity.
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[Key]*list.Element),
	}
}

// Get returns the memoized explanation for a key, if present.
func (c *MemoryCache) Get(ctx context.Context, key Key) (models.Explanation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return models.Explanation{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*memoryEntry).explanation, true
}

// Set stores an explanation, evicting the least recently used entry when the
// cache is full.
func (c *MemoryCache) Set(ctx context.Context, key Key, explanation models.Explanation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*memoryEntry).explanation = explanation
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&memoryEntry{key: key, explanation: explanation})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*memoryEntry).key)
	}
}

// Len reports the number of cached explanations.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
