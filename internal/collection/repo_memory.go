package collection

import (
	"context"
	"sync"

	"github.com/on321go/wildkinCards/internal/cards"
)

// MemoryRepo keeps the album in memory. The default for normal play:
// the collection resets with the process.
type MemoryRepo struct {
	mu    sync.RWMutex
	cards []cards.Card
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Append(ctx context.Context, c cards.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards = append(r.cards, c)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]cards.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]cards.Card, len(r.cards))
	copy(out, r.cards)
	return out, nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cards), nil
}
