package collection

import (
	"context"

	"github.com/on321go/wildkinCards/internal/cards"
)

// Repository is the kid's album: cards land at the end when committed
// and are never reordered or removed.
type Repository interface {
	Append(ctx context.Context, c cards.Card) error
	List(ctx context.Context) ([]cards.Card, error)
	Count(ctx context.Context) (int, error)
}
