// ABOUTME: In-memory per-conversation turn history with lazy creation
// ABOUTME: Provides per-conversation guards for serializing whole exchanges

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role tags a turn as originating from the user or the assistant.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message unit within a conversation. Immutable once appended.
type Turn struct {
	ID        string
	Role      Role
	Content   string
	CreatedAt time.Time
}

// conversation holds the history and exchange guard for a single chat.
type conversation struct {
	mu    sync.Mutex // guards turns
	guard sync.Mutex // serializes whole exchanges, held across backend calls
	turns []Turn
}

// Store maps conversation IDs to their turn history.
// The zero value is not usable; construct with NewStore.
type Store struct {
	mu            sync.RWMutex
	conversations map[int64]*conversation

	// maxTurns caps history length per conversation; 0 means unbounded.
	maxTurns int
}

// Option configures a Store.
type Option func(*Store)

// WithMaxTurns enables drop-oldest trimming once a conversation exceeds n
// turns. n <= 0 leaves history unbounded.
func WithMaxTurns(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxTurns = n
		}
	}
}

// NewStore creates an empty session store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		conversations: make(map[int64]*conversation),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// get returns the conversation for id, creating it if absent.
func (s *Store) get(id int64) *conversation {
	s.mu.RLock()
	c, ok := s.conversations[id]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the write lock: another goroutine may have raced us here
	if c, ok = s.conversations[id]; ok {
		return c
	}
	c = &conversation{}
	s.conversations[id] = c
	return c
}

// Append adds a turn to a conversation's history, creating the conversation
// if needed. Amortized O(1). Applies the trimming policy if one is set.
func (s *Store) Append(conversationID int64, role Role, content string) Turn {
	turn := Turn{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}

	c := s.get(conversationID)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.turns = append(c.turns, turn)
	if s.maxTurns > 0 && len(c.turns) > s.maxTurns {
		// Drop oldest; copy so the backing array does not pin trimmed turns
		trimmed := make([]Turn, s.maxTurns)
		copy(trimmed, c.turns[len(c.turns)-s.maxTurns:])
		c.turns = trimmed
	}
	return turn
}

// Snapshot returns a copy of a conversation's full history in append order.
// Reflects every turn appended before the call. Returns nil for a
// conversation that has never been written to.
func (s *Store) Snapshot(conversationID int64) []Turn {
	s.mu.RLock()
	c, ok := s.conversations[conversationID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns stored for a conversation.
func (s *Store) Len(conversationID int64) int {
	s.mu.RLock()
	c, ok := s.conversations[conversationID]
	s.mu.RUnlock()
	if !ok {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// Guard returns the exclusive-exchange mutex for a conversation, creating
// the conversation if absent. Holding the guard serializes the
// append-complete-append critical section for that conversation only;
// other conversations proceed in parallel. The guard is distinct from the
// internal history lock, so Append and Snapshot never block on an
// in-flight backend call from another conversation.
func (s *Store) Guard(conversationID int64) *sync.Mutex {
	return &s.get(conversationID).guard
}
