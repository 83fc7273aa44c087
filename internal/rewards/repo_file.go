package rewards

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const trackerFile = "tracker.json"

// FileStateRepo persists the tracker as JSON under the data directory,
// so progress toward the next card survives restarts.
type FileStateRepo struct {
	mu   sync.RWMutex
	path string
	s    TrackerState
}

func NewFileStateRepo(dataDir string) (*FileStateRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("rewards: create data dir: %w", err)
	}
	r := &FileStateRepo{path: filepath.Join(dataDir, trackerFile)}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileStateRepo) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.s = TrackerState{}
			return nil
		}
		return fmt.Errorf("rewards: read %s: %w", r.path, err)
	}
	if err := json.Unmarshal(data, &r.s); err != nil {
		return fmt.Errorf("rewards: parse %s: %w", r.path, err)
	}
	return nil
}

func (r *FileStateRepo) saveLocked() error {
	data, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}

func (r *FileStateRepo) Get(ctx context.Context) (TrackerState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.clone(), nil
}

func (r *FileStateRepo) Set(ctx context.Context, s TrackerState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s = s.clone()
	return r.saveLocked()
}
