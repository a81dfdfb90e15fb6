// ABOUTME: TTL and size-bounded cache of seen transport update IDs
// ABOUTME: Oldest-first eviction via a linked list, periodic expiry sweep

package dedupe

import (
	"container/list"
	"sync"
	"time"
)

type entry struct {
	seenAt  time.Time
	element *list.Element
}

// Cache remembers recently seen update IDs. Safe for concurrent use.
// Entries expire after the TTL; when the cache is full the oldest entry is
// evicted in O(1) using the insertion-order list.
type Cache struct {
	mu      sync.Mutex
	entries map[int64]*entry
	order   *list.List // update IDs, oldest at the front
	ttl     time.Duration
	maxSize int
	done    chan struct{}
	closed  bool
}

// New creates a cache holding at most maxSize IDs for up to ttl each.
// A background goroutine sweeps expired entries once a minute.
func New(ttl time.Duration, maxSize int) *Cache {
	c := &Cache{
		entries: make(map[int64]*entry),
		order:   list.New(),
		ttl:     ttl,
		maxSize: maxSize,
		done:    make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

// Duplicate atomically reports whether id was already seen within the TTL,
// marking it as seen if it was not. The atomic check-and-mark avoids the
// race where two deliveries of one update both pass a separate check.
func (c *Cache) Duplicate(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[id]; ok && time.Since(e.seenAt) < c.ttl {
		return true
	}

	now := time.Now()
	if e, ok := c.entries[id]; ok {
		// Expired entry for the same ID: refresh in place
		e.seenAt = now
		c.order.MoveToBack(e.element)
		return false
	}

	if len(c.entries) >= c.maxSize {
		if front := c.order.Front(); front != nil {
			oldest, _ := front.Value.(int64)
			c.order.Remove(front)
			delete(c.entries, oldest)
		}
	}

	c.entries[id] = &entry{seenAt: now, element: c.order.PushBack(id)}
	return false
}

// Len returns the number of tracked IDs, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for id, e := range c.entries {
		if now.Sub(e.seenAt) > c.ttl {
			c.order.Remove(e.element)
			delete(c.entries, id)
		}
	}
}

// Close stops the sweep goroutine. Safe to call multiple times.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		close(c.done)
		c.closed = true
	}
}
