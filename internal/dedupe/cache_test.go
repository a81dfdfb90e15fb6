// ABOUTME: Tests for the update dedupe cache
// ABOUTME: Verifies duplicate detection, TTL expiry, and size-bounded eviction

package dedupe

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_DuplicateDetection(t *testing.T) {
	c := New(time.Minute, 100)
	defer c.Close()

	assert.False(t, c.Duplicate(1))
	assert.True(t, c.Duplicate(1))
	assert.False(t, c.Duplicate(2))
	assert.True(t, c.Duplicate(2))
}

func TestCache_ExpiredEntryIsNotDuplicate(t *testing.T) {
	c := New(20*time.Millisecond, 100)
	defer c.Close()

	assert.False(t, c.Duplicate(1))
	time.Sleep(40 * time.Millisecond)
	assert.False(t, c.Duplicate(1))
	assert.True(t, c.Duplicate(1))
}

func TestCache_EvictsOldestAtCapacity(t *testing.T) {
	c := New(time.Minute, 3)
	defer c.Close()

	c.Duplicate(1)
	c.Duplicate(2)
	c.Duplicate(3)
	c.Duplicate(4) // evicts 1

	assert.Equal(t, 3, c.Len())
	assert.False(t, c.Duplicate(1)) // forgotten, so not a duplicate
	assert.True(t, c.Duplicate(4))
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(time.Minute, 1000)
	defer c.Close()

	var wg sync.WaitGroup
	var mu sync.Mutex
	fresh := 0
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := int64(0); id < 100; id++ {
				if !c.Duplicate(id) {
					mu.Lock()
					fresh++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	// Each ID is fresh exactly once across all goroutines
	assert.Equal(t, 100, fresh)
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := New(time.Minute, 10)
	c.Close()
	c.Close()
}
