package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lib.Creatures) == 0 || len(lib.Innate) == 0 || len(lib.Switch) == 0 || len(lib.Passages) == 0 {
		t.Fatalf("embedded library has empty pools: %+v", lib)
	}
	for _, c := range lib.Creatures {
		if !c.Archetype.Valid() {
			t.Errorf("creature %s has invalid archetype %q", c.ID, c.Archetype)
		}
	}
	if _, ok := lib.InnateAbility("ab_pounce"); !ok {
		t.Errorf("InnateAbility(ab_pounce) not found")
	}
	if _, ok := lib.SwitchAbility("sw_heal_pulse"); !ok {
		t.Errorf("SwitchAbility(sw_heal_pulse) not found")
	}
	if _, ok := lib.PassageByID("ps_fox_sun"); !ok {
		t.Errorf("PassageByID(ps_fox_sun) not found")
	}
}

func writeContentDir(t *testing.T, creatures, abilities, passages string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"creatures.json": creatures,
		"abilities.json": abilities,
		"passages.json":  passages,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

const (
	okCreatures = `[{"id":"c1","name":"Pebble","archetype":"guardian","stamina":5,"strength":2,"shield":1,"speed":1}]`
	okAbilities = `{"innate":[{"id":"a1","name":"Nudge","description":"d"}],"switch":[{"id":"s1","name":"Hop In","description":"d"}]}`
	okPassages  = `[{"id":"p1","text":"The cat sat.","level":1}]`
)

func TestLoadDir(t *testing.T) {
	dir := writeContentDir(t, okCreatures, okAbilities, okPassages)
	lib, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(lib.Creatures) != 1 || lib.Creatures[0].Name != "Pebble" {
		t.Fatalf("unexpected creatures: %+v", lib.Creatures)
	}
}

func TestLoadDirMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected error for empty content dir")
	}
}

func TestLoadDirMalformed(t *testing.T) {
	dir := writeContentDir(t, `[{"id":`, okAbilities, okPassages)
	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected parse error")
	} else if !strings.Contains(err.Error(), "creatures.json") {
		t.Fatalf("error should name the file, got: %v", err)
	}
}

func TestLoadDirValidation(t *testing.T) {
	cases := []struct {
		name      string
		creatures string
		passages  string
		wantErr   string
	}{
		{
			name:      "duplicate creature id",
			creatures: `[{"id":"c1","name":"A","archetype":"striker","stamina":1},{"id":"c1","name":"B","archetype":"striker","stamina":1}]`,
			passages:  okPassages,
			wantErr:   "duplicate creature id",
		},
		{
			name:      "unknown archetype",
			creatures: `[{"id":"c1","name":"A","archetype":"wizard","stamina":1}]`,
			passages:  okPassages,
			wantErr:   "unknown archetype",
		},
		{
			name:      "negative stat",
			creatures: `[{"id":"c1","name":"A","archetype":"striker","stamina":-1}]`,
			passages:  okPassages,
			wantErr:   "negative stats",
		},
		{
			name:      "no passages",
			creatures: okCreatures,
			passages:  `[]`,
			wantErr:   "no passages",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeContentDir(t, tc.creatures, okAbilities, tc.passages)
			_, err := LoadDir(dir)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}
