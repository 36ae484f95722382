package likes

import (
	"context"
	"sync"
)

// MemoryCounter is an in-process Counter for tests and single-node development.
type MemoryCounter struct {
	mu     sync.Mutex
	likers map[uint]map[string]struct{}
	// BatchCalls counts CountBatch invocations.
	BatchCalls int
}

// NewMemoryCounter returns an empty MemoryCounter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{likers: make(map[uint]map[string]struct{})}
}

func (c *MemoryCounter) Increment(_ context.Context, postID uint, likerID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.likers[postID]
	if !ok {
		set = make(map[string]struct{})
		c.likers[postID] = set
	}
	if _, dup := set[likerID]; dup {
		return false, nil
	}
	set[likerID] = struct{}{}
	return true, nil
}

func (c *MemoryCounter) Decrement(_ context.Context, postID uint, likerID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set := c.likers[postID]
	if _, ok := set[likerID]; !ok {
		return false, nil
	}
	delete(set, likerID)
	return true, nil
}

func (c *MemoryCounter) Count(_ context.Context, postID uint) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.likers[postID])), nil
}

func (c *MemoryCounter) CountBatch(_ context.Context, postIDs []uint) (map[uint]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BatchCalls++
	counts := make(map[uint]int64, len(postIDs))
	for _, id := range postIDs {
		counts[id] = int64(len(c.likers[id]))
	}
	return counts, nil
}

func (c *MemoryCounter) Forget(_ context.Context, postID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.likers, postID)
	return nil
}
