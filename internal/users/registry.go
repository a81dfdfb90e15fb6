// ABOUTME: In-memory registry of distinct user IDs seen by the bot
// ABOUTME: Concurrent-safe set with idempotent registration and cardinality

package users

import "sync"

// Registry holds the set of unique user IDs that have sent any event.
// IDs are transport-assigned and opaque to the rest of the system.
// Entries live for the process lifetime; there is no removal.
type Registry struct {
	mu   sync.RWMutex
	seen map[int64]struct{}
}

// NewRegistry creates an empty user registry.
func NewRegistry() *Registry {
	return &Registry{
		seen: make(map[int64]struct{}),
	}
}

// Register records a user ID. Returns true if the ID was not seen before.
// Safe for concurrent use; registering an existing ID is a no-op.
func (r *Registry) Register(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[id]; ok {
		return false
	}
	r.seen[id] = struct{}{}
	return true
}

// Known reports whether a user ID has been registered.
func (r *Registry) Known(id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.seen[id]
	return ok
}

// Count returns the number of distinct registered users.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.seen)
}
