package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/on321go/wildkinCards/internal/cards"
)

const albumFile = "collection.json"

type albumState struct {
	Cards []cards.Card `json:"cards"`
}

// FileRepo persists the album as pretty-printed JSON under the data
// directory, so a collection survives restarts.
type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    albumState
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("collection: create data dir: %w", err)
	}
	r := &FileRepo{path: filepath.Join(dataDir, albumFile)}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.s = albumState{}
			return nil
		}
		return fmt.Errorf("collection: read %s: %w", r.path, err)
	}
	if err := json.Unmarshal(data, &r.s); err != nil {
		return fmt.Errorf("collection: parse %s: %w", r.path, err)
	}
	return nil
}

func (r *FileRepo) saveLocked() error {
	data, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}

func (r *FileRepo) Append(ctx context.Context, c cards.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.Cards = append(r.s.Cards, c)
	return r.saveLocked()
}

func (r *FileRepo) List(ctx context.Context) ([]cards.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]cards.Card, len(r.s.Cards))
	copy(out, r.s.Cards)
	return out, nil
}

func (r *FileRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.s.Cards), nil
}
