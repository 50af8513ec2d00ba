package bestiary

import (
	"embed"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

//go:embed content/*.yaml
var defaultContent embed.FS

// ErrUnknownKind is returned when a combatant is requested for a kind that
// has no template.
var ErrUnknownKind = errors.New("no template for creature kind")

// Bestiary maps each creature kind to its template and spawns combatants.
type Bestiary struct {
	templates map[combat.Kind]*Template
	newID     func() string
}

// New builds a Bestiary from templates.
//
// Precondition: each template must be valid.
// Postcondition: Returns an error if two templates share a kind.
func New(templates []*Template) (*Bestiary, error) {
	b := &Bestiary{
		templates: make(map[combat.Kind]*Template, len(templates)),
		newID:     uuid.NewString,
	}
	for _, t := range templates {
		kind, err := t.Kind()
		if err != nil {
			return nil, err
		}
		if _, dup := b.templates[kind]; dup {
			return nil, fmt.Errorf("duplicate template for kind %q", kind)
		}
		b.templates[kind] = t
	}
	return b, nil
}

// Default returns the bestiary built from the embedded templates.
//
// Postcondition: Returns a Bestiary with a template for every combat.Kinds entry.
func Default() *Bestiary {
	templates, err := loadTemplatesFS(defaultContent, "content", "embedded")
	if err != nil {
		panic("bestiary: embedded templates are invalid: " + err.Error())
	}
	b, err := New(templates)
	if err != nil {
		panic("bestiary: embedded templates are invalid: " + err.Error())
	}
	return b
}

// Load returns the default bestiary with every template found in dir
// replacing the default of the same kind. An empty dir yields Default().
//
// Postcondition: Returns a Bestiary covering every kind, or an error.
func Load(dir string) (*Bestiary, error) {
	b := Default()
	if dir == "" {
		return b, nil
	}
	overrides, err := LoadTemplates(dir)
	if err != nil {
		return nil, err
	}
	seen := make(map[combat.Kind]bool, len(overrides))
	for _, t := range overrides {
		kind, err := t.Kind()
		if err != nil {
			return nil, err
		}
		if seen[kind] {
			return nil, fmt.Errorf("bestiary dir %q: duplicate template for kind %q", dir, kind)
		}
		seen[kind] = true
		b.templates[kind] = t
	}
	return b, nil
}

// Template returns the template for kind.
//
// Postcondition: Returns (template, true) if found, or (nil, false) otherwise.
func (b *Bestiary) Template(kind combat.Kind) (*Template, bool) {
	t, ok := b.templates[kind]
	return t, ok
}

// Kinds returns the kinds this bestiary can spawn, in kind order.
func (b *Bestiary) Kinds() []combat.Kind {
	kinds := make([]combat.Kind, 0, len(b.templates))
	for k := range b.templates {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Spawn creates a fresh combatant of kind named name at full health.
//
// Precondition: name must be non-empty.
// Postcondition: Returns a living, unenlisted combatant with a unique ID, or
// ErrUnknownKind if no template covers kind.
func (b *Bestiary) Spawn(kind combat.Kind, name string) (*combat.Combatant, error) {
	t, ok := b.templates[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	c, err := combat.NewCombatant(b.newID(), kind, name, t.Stats())
	if err != nil {
		return nil, fmt.Errorf("spawning %s %q: %w", kind, name, err)
	}
	return c, nil
}
