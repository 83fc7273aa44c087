package cards

import (
	"time"

	"github.com/on321go/wildkinCards/internal/content"
)

// Rarity is the tier rolled for a minted card.
type Rarity string

const (
	RarityCommon Rarity = "common"
	RarityRare   Rarity = "rare"
	RarityEpic   Rarity = "epic"
)

// Rarity thresholds on a single uniform sample in [0,1). Boundaries are
// exclusive on the low side: a roll of exactly 0.95 is still rare and
// exactly 0.70 is still common.
const (
	epicAbove = 0.95
	rareAbove = 0.70
)

// RollRarity maps one uniform sample to a tier.
func RollRarity(sample float64) Rarity {
	switch {
	case sample > epicAbove:
		return RarityEpic
	case sample > rareAbove:
		return RarityRare
	default:
		return RarityCommon
	}
}

// StaminaBonus is added to the creature's base stamina at mint time.
func (r Rarity) StaminaBonus() int {
	switch r {
	case RarityRare:
		return 1
	case RarityEpic:
		return 2
	}
	return 0
}

// StrengthBonus is added to the creature's base strength at mint time.
func (r Rarity) StrengthBonus() int {
	if r == RarityEpic {
		return 1
	}
	return 0
}

// Stats are the final card stats after rarity bonuses. Shield and speed
// always carry over unmodified.
type Stats struct {
	Stamina  int `json:"stamina"`
	Strength int `json:"strength"`
	Shield   int `json:"shield"`
	Speed    int `json:"speed"`
}

// Card is one minted collectible. Two cards minted from the same
// creature are distinct: each gets its own id and rolls.
type Card struct {
	ID         string            `json:"id"`
	CreatureID string            `json:"creature_id"`
	Name       string            `json:"name"`
	Archetype  content.Archetype `json:"archetype"`
	Rarity     Rarity            `json:"rarity"`
	Stats      Stats             `json:"stats"`
	Innate     *content.Ability  `json:"innate,omitempty"`
	Switch     *content.Ability  `json:"switch,omitempty"`
	MintedAt   time.Time         `json:"minted_at"`
}
