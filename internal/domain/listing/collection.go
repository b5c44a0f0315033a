package listing

import (
	"sync"
	"sync/atomic"
)

// Collection holds the latest fetched items. Every fetch takes a sequence
// number before it starts; a result is applied only if no fetch started later
// has been applied yet, so a slow superseded fetch never wins.
type Collection[T any] struct {
	next atomic.Uint64

	mu      sync.RWMutex
	applied uint64
	items   []T
}

// Begin returns the sequence number of a fetch about to start.
func (c *Collection[T]) Begin() uint64 {
	return c.next.Add(1)
}

// Replace applies items fetched under seq and reports whether they were kept.
func (c *Collection[T]) Replace(seq uint64, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.applied {
		return false
	}

	c.applied = seq
	c.items = items
	return true
}

func (c *Collection[T]) Items() ([]T, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.items, c.applied
}
