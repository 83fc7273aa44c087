package cards

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/on321go/wildkinCards/internal/content"
)

// RNG is the randomness a Generator consumes. *rand.Rand satisfies it;
// tests substitute fixed sequences.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

// ErrNoCreatures is returned when the library has nothing to mint from.
var ErrNoCreatures = errors.New("cards: creature pool is empty")

// Generator mints cards from a content library. It is pure sampling:
// no state of its own, every call independent.
type Generator struct {
	Library *content.Library
	RNG     RNG
}

// Mint rolls one card: uniform creature pick, one rarity sample, one
// ability per pool filtered by the creature's archetype.
func (g Generator) Mint(now time.Time) (Card, error) {
	if g.Library == nil || len(g.Library.Creatures) == 0 {
		return Card{}, ErrNoCreatures
	}
	c := g.Library.Creatures[g.RNG.Intn(len(g.Library.Creatures))]
	rarity := RollRarity(g.RNG.Float64())

	card := Card{
		ID:         uuid.NewString(),
		CreatureID: c.ID,
		Name:       c.Name,
		Archetype:  c.Archetype,
		Rarity:     rarity,
		Stats: Stats{
			Stamina:  c.Stamina + rarity.StaminaBonus(),
			Strength: c.Strength + rarity.StrengthBonus(),
			Shield:   c.Shield,
			Speed:    c.Speed,
		},
		MintedAt: now,
	}

	pools := PoolsFor(c.Archetype)
	if a, ok := g.pick(pools.Innate, g.Library.InnateAbility); ok {
		card.Innate = &a
	}
	if a, ok := g.pick(pools.Switch, g.Library.SwitchAbility); ok {
		card.Switch = &a
	}
	return card, nil
}

// pick filters the pool down to abilities the library actually defines,
// then draws uniformly. An empty result leaves the slot unset.
func (g Generator) pick(ids []string, lookup func(string) (content.Ability, bool)) (content.Ability, bool) {
	found := make([]content.Ability, 0, len(ids))
	for _, id := range ids {
		if a, ok := lookup(id); ok {
			found = append(found, a)
		}
	}
	if len(found) == 0 {
		return content.Ability{}, false
	}
	return found[g.RNG.Intn(len(found))], true
}
