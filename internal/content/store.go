package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed data/*.json
var embeddedFS embed.FS

const (
	creaturesFile = "creatures.json"
	abilitiesFile = "abilities.json"
	passagesFile  = "passages.json"
)

// abilitiesDoc is the on-disk shape of abilities.json: the two pools
// live in one file so they can be reviewed side by side.
type abilitiesDoc struct {
	Innate []Ability `json:"innate"`
	Switch []Ability `json:"switch"`
}

// Load parses the content compiled into the binary.
func Load() (*Library, error) {
	sub, err := fs.Sub(embeddedFS, "data")
	if err != nil {
		return nil, fmt.Errorf("content: open embedded data: %w", err)
	}
	return loadFS(sub)
}

// LoadDir parses content from a directory on disk, for local authoring
// without a rebuild. The directory must hold the same three files the
// embedded set does.
func LoadDir(dir string) (*Library, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content: stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content: %s is not a directory", dir)
	}
	return loadFS(os.DirFS(filepath.Clean(dir)))
}

func loadFS(fsys fs.FS) (*Library, error) {
	var creatures []Creature
	if err := readJSON(fsys, creaturesFile, &creatures); err != nil {
		return nil, err
	}
	var doc abilitiesDoc
	if err := readJSON(fsys, abilitiesFile, &doc); err != nil {
		return nil, err
	}
	var passages []Passage
	if err := readJSON(fsys, passagesFile, &passages); err != nil {
		return nil, err
	}
	return NewLibrary(creatures, doc.Innate, doc.Switch, passages)
}

func readJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("content: parse %s: %w", name, err)
	}
	return nil
}
