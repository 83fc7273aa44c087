package rewards

import (
	"context"
	"sync"
)

// MemoryStateRepo keeps the tracker in memory: progress lasts for one
// sitting and resets with the process.
type MemoryStateRepo struct {
	mu sync.RWMutex
	s  TrackerState
}

func NewMemoryStateRepo() *MemoryStateRepo {
	return &MemoryStateRepo{}
}

func (r *MemoryStateRepo) Get(ctx context.Context) (TrackerState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.clone(), nil
}

func (r *MemoryStateRepo) Set(ctx context.Context, s TrackerState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s = s.clone()
	return nil
}
