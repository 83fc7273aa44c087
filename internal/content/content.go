package content

import (
	"fmt"
)

// Archetype groups creatures by playstyle and decides which ability
// pools a minted card may draw from.
type Archetype string

const (
	ArchetypeGuardian  Archetype = "guardian"
	ArchetypeStriker   Archetype = "striker"
	ArchetypeSupporter Archetype = "supporter"
)

// Valid reports whether a is one of the known archetypes.
func (a Archetype) Valid() bool {
	switch a {
	case ArchetypeGuardian, ArchetypeStriker, ArchetypeSupporter:
		return true
	}
	return false
}

// Creature is a base creature definition. Cards snapshot these values
// at mint time; the definitions themselves are never mutated.
type Creature struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Archetype Archetype `json:"archetype"`
	Stamina   int       `json:"stamina"`
	Strength  int       `json:"strength"`
	Shield    int       `json:"shield"`
	Speed     int       `json:"speed"`
}

// Ability is a named move a card can carry. Mechanics live client-side;
// the server only deals in identity and display text.
type Ability struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Passage is a short reading exercise.
type Passage struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Library holds all static content, loaded once at startup.
type Library struct {
	Creatures []Creature
	Innate    []Ability
	Switch    []Ability
	Passages  []Passage

	innateByID  map[string]Ability
	switchByID  map[string]Ability
	passageByID map[string]Passage
}

// NewLibrary validates and indexes a content set. Loaders and test
// fixtures both come through here.
func NewLibrary(creatures []Creature, innate, switches []Ability, passages []Passage) (*Library, error) {
	lib := &Library{
		Creatures: creatures,
		Innate:    innate,
		Switch:    switches,
		Passages:  passages,
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	lib.index()
	return lib, nil
}

// InnateAbility looks up an innate-pool ability by id.
func (l *Library) InnateAbility(id string) (Ability, bool) {
	a, ok := l.innateByID[id]
	return a, ok
}

// SwitchAbility looks up a switch-pool ability by id.
func (l *Library) SwitchAbility(id string) (Ability, bool) {
	a, ok := l.switchByID[id]
	return a, ok
}

// PassageByID looks up a passage by id.
func (l *Library) PassageByID(id string) (Passage, bool) {
	p, ok := l.passageByID[id]
	return p, ok
}

func (l *Library) index() {
	l.innateByID = make(map[string]Ability, len(l.Innate))
	for _, a := range l.Innate {
		l.innateByID[a.ID] = a
	}
	l.switchByID = make(map[string]Ability, len(l.Switch))
	for _, a := range l.Switch {
		l.switchByID[a.ID] = a
	}
	l.passageByID = make(map[string]Passage, len(l.Passages))
	for _, p := range l.Passages {
		l.passageByID[p.ID] = p
	}
}

// Validate checks the library for the problems that should stop the
// process at startup rather than surface mid-session.
func (l *Library) Validate() error {
	if len(l.Creatures) == 0 {
		return fmt.Errorf("content: no creatures defined")
	}
	if len(l.Passages) == 0 {
		return fmt.Errorf("content: no passages defined")
	}

	seen := make(map[string]bool, len(l.Creatures))
	for _, c := range l.Creatures {
		if c.ID == "" || c.Name == "" {
			return fmt.Errorf("content: creature with empty id or name")
		}
		if seen[c.ID] {
			return fmt.Errorf("content: duplicate creature id %q", c.ID)
		}
		seen[c.ID] = true
		if !c.Archetype.Valid() {
			return fmt.Errorf("content: creature %q has unknown archetype %q", c.ID, c.Archetype)
		}
		if c.Stamina < 0 || c.Strength < 0 || c.Shield < 0 || c.Speed < 0 {
			return fmt.Errorf("content: creature %q has negative stats", c.ID)
		}
	}

	if err := validateAbilities("innate", l.Innate); err != nil {
		return err
	}
	if err := validateAbilities("switch", l.Switch); err != nil {
		return err
	}

	seen = make(map[string]bool, len(l.Passages))
	for _, p := range l.Passages {
		if p.ID == "" || p.Text == "" {
			return fmt.Errorf("content: passage with empty id or text")
		}
		if seen[p.ID] {
			return fmt.Errorf("content: duplicate passage id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Level < 1 {
			return fmt.Errorf("content: passage %q has level %d, want >= 1", p.ID, p.Level)
		}
	}
	return nil
}

func validateAbilities(pool string, abilities []Ability) error {
	seen := make(map[string]bool, len(abilities))
	for _, a := range abilities {
		if a.ID == "" || a.Name == "" {
			return fmt.Errorf("content: %s ability with empty id or name", pool)
		}
		if seen[a.ID] {
			return fmt.Errorf("content: duplicate %s ability id %q", pool, a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}
