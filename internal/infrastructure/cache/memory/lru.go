// Package memory provides the default in-process geocode cache: a bounded
// map with least-recently-used eviction. The cache is an optimization only;
// it never fails a request.
package memory

import (
	"container/list"
	"context"
	"sync"

	"github.com/datakota/usaha-assistant/internal/core/domain"
)

type lruEntry struct {
	key  string
	addr *domain.Address
}

type LRU struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

func NewLRU(capacity int) *LRU {
	if capacity <= 0 {
		capacity = 2048
	}
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

func (c *LRU) Get(_ context.Context, key string) (*domain.Address, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	c.order.MoveToFront(element)
	return element.Value.(*lruEntry).addr, true, nil
}

func (c *LRU) Set(_ context.Context, key string, addr *domain.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.entries[key]; ok {
		element.Value.(*lruEntry).addr = addr
		c.order.MoveToFront(element)
		return nil
	}

	c.entries[key] = c.order.PushFront(&lruEntry{key: key, addr: addr})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*lruEntry).key)
	}
	return nil
}

// Len reports the number of cached entries.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
