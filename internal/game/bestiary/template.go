// Package bestiary provides creature-kind templates and spawns combatants
// from them.
package bestiary

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// Template defines the fixed base stats of one creature kind, loaded from YAML.
type Template struct {
	// ID is the creature kind tag: goblin, troll, or orc.
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	MaxHP       int    `yaml:"max_hp"`
	Attack      int    `yaml:"attack"`
	Speed       int    `yaml:"speed"`
	Strikes     int    `yaml:"strikes"`
	Regen       int    `yaml:"regen"`
	Block       int    `yaml:"block"`
	Reflect     int    `yaml:"reflect"`
}

// Kind returns the creature kind named by ID.
func (t *Template) Kind() (combat.Kind, error) {
	return combat.ParseKind(t.ID)
}

// Stats converts the template into engine stats.
func (t *Template) Stats() combat.Stats {
	return combat.Stats{
		MaxHP:   t.MaxHP,
		Attack:  t.Attack,
		Speed:   t.Speed,
		Strikes: t.Strikes,
		Regen:   t.Regen,
		Block:   t.Block,
		Reflect: t.Reflect,
	}
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID names a known kind and the stats are
// valid for that kind; returns an error on the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("bestiary template: id must not be empty")
	}
	kind, err := t.Kind()
	if err != nil {
		return fmt.Errorf("bestiary template %q: %w", t.ID, err)
	}
	if err := t.Stats().Validate(kind); err != nil {
		return fmt.Errorf("bestiary template %q: %w", t.ID, err)
	}
	return nil
}

// LoadTemplateFromBytes parses a single template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template with a normalized lowercase ID,
// or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	tmpl.ID = strings.ToLower(strings.TrimSpace(tmpl.ID))
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	return loadTemplatesFS(os.DirFS(dir), ".", dir)
}

func loadTemplatesFS(fsys fs.FS, root, label string) ([]*Template, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("reading bestiary dir %q: %w", label, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		name := path.Join(root, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", name, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", name, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
