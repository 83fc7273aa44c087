package cards

import (
	"github.com/on321go/wildkinCards/internal/content"
)

// AbilityPools lists the ability ids an archetype may roll, one set per
// card slot.
type AbilityPools struct {
	Innate []string
	Switch []string
}

// archetypeAbilities is the whole archetype-to-ability mapping. Adding
// an archetype or moving an ability between archetypes is an edit here,
// nowhere else.
var archetypeAbilities = map[content.Archetype]AbilityPools{
	content.ArchetypeGuardian: {
		Innate: []string{"ab_stone_hide", "ab_root_grip", "ab_bulwark_call"},
		Switch: []string{"sw_iron_bark", "sw_ground_slam"},
	},
	content.ArchetypeStriker: {
		Innate: []string{"ab_pounce", "ab_ember_dash", "ab_talon_flurry"},
		Switch: []string{"sw_wind_step", "sw_double_strike"},
	},
	content.ArchetypeSupporter: {
		Innate: []string{"ab_soothing_hum", "ab_glow_veil", "ab_petal_shield"},
		Switch: []string{"sw_heal_pulse", "sw_brave_song"},
	},
}

// PoolsFor returns the ability pools allowed for an archetype. Unknown
// archetypes get empty pools, which mints a card with no abilities.
func PoolsFor(a content.Archetype) AbilityPools {
	return archetypeAbilities[a]
}
