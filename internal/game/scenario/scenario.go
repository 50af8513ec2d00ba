// Package scenario loads battle scripts and builds their rosters.
package scenario

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/bestiary"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/names"
)

//go:embed content/default.yaml
var defaultScript []byte

// Side describes one roster of a battle: either a fixed list of kinds or a
// number of randomly chosen kinds.
type Side struct {
	Team   string   `yaml:"team"`
	Kinds  []string `yaml:"kinds"`
	Random int      `yaml:"random"`
}

// Validate checks that the side names a team and exactly one lineup form.
//
// Postcondition: Returns nil iff Team is non-empty and either Kinds holds only
// known kinds or Random is positive, but not both.
func (s Side) Validate() error {
	if strings.TrimSpace(s.Team) == "" {
		return fmt.Errorf("team must not be empty")
	}
	if s.Random < 0 {
		return fmt.Errorf("team %q: random must be >= 0, got %d", s.Team, s.Random)
	}
	switch {
	case len(s.Kinds) > 0 && s.Random > 0:
		return fmt.Errorf("team %q: kinds and random are mutually exclusive", s.Team)
	case len(s.Kinds) == 0 && s.Random == 0:
		return fmt.Errorf("team %q: %w", s.Team, combat.ErrEmptyRoster)
	}
	for _, k := range s.Kinds {
		if _, err := combat.ParseKind(k); err != nil {
			return fmt.Errorf("team %q: %w", s.Team, err)
		}
	}
	return nil
}

// Size reports how many combatants the side fields.
func (s Side) Size() int {
	if s.Random > 0 {
		return s.Random
	}
	return len(s.Kinds)
}

// Battle is one scripted match between two sides.
type Battle struct {
	Name   string `yaml:"name"`
	First  Side   `yaml:"first"`
	Second Side   `yaml:"second"`
}

// Validate checks both sides.
func (b Battle) Validate() error {
	if err := b.First.Validate(); err != nil {
		return fmt.Errorf("battle %q first side: %w", b.Name, err)
	}
	if err := b.Second.Validate(); err != nil {
		return fmt.Errorf("battle %q second side: %w", b.Name, err)
	}
	return nil
}

// Script is an ordered list of battles.
type Script struct {
	Battles []Battle `yaml:"battles"`
}

// Names reports how many names running every battle of the script consumes.
func (s *Script) Names() int {
	n := 0
	for _, b := range s.Battles {
		n += b.First.Size() + b.Second.Size()
	}
	return n
}

// LoadFromBytes parses and validates a script from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the script schema.
// Postcondition: Returns a script with at least one battle, or an error.
func LoadFromBytes(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if len(s.Battles) == 0 {
		return nil, fmt.Errorf("scenario must define at least one battle")
	}
	for i := range s.Battles {
		if s.Battles[i].Name == "" {
			s.Battles[i].Name = fmt.Sprintf("battle %d", i+1)
		}
		if err := s.Battles[i].Validate(); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// Load reads a script from path.
//
// Precondition: path must point to a readable YAML file.
// Postcondition: Returns a validated script or a non-nil error.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file %s: %w", path, err)
	}
	s, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("scenario file %s: %w", path, err)
	}
	return s, nil
}

// Default returns the built-in script: a one-on-one and a one-on-two battle
// for each pairing of kinds, then a random four-on-four.
func Default() *Script {
	s, err := LoadFromBytes(defaultScript)
	if err != nil {
		panic("scenario: embedded script is invalid: " + err.Error())
	}
	return s
}

// Build spawns both sides of the battle and returns their rosters.
//
// Precondition: beasts, pool and src must be non-nil.
// Postcondition: Returns two rosters whose members are freshly spawned, or an
// error such as names.ErrPoolExhausted.
func (b Battle) Build(beasts *bestiary.Bestiary, pool *names.Pool, src dice.Source) (first, second *combat.Roster, err error) {
	first, err = buildSide(b.First, beasts, pool, src)
	if err != nil {
		return nil, nil, fmt.Errorf("battle %q: %w", b.Name, err)
	}
	second, err = buildSide(b.Second, beasts, pool, src)
	if err != nil {
		return nil, nil, fmt.Errorf("battle %q: %w", b.Name, err)
	}
	return first, second, nil
}

func buildSide(s Side, beasts *bestiary.Bestiary, pool *names.Pool, src dice.Source) (*combat.Roster, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	available := beasts.Kinds()
	members := make([]*combat.Combatant, 0, s.Size())
	for i := 0; i < s.Size(); i++ {
		var kind combat.Kind
		if s.Random > 0 {
			if len(available) == 0 {
				return nil, fmt.Errorf("team %q: %w", s.Team, bestiary.ErrUnknownKind)
			}
			kind = available[dice.Pick(src, len(available))]
		} else {
			kind, _ = combat.ParseKind(s.Kinds[i])
		}
		name, err := pool.Pop()
		if err != nil {
			return nil, fmt.Errorf("team %q: %w", s.Team, err)
		}
		c, err := beasts.Spawn(kind, name)
		if err != nil {
			return nil, fmt.Errorf("team %q: %w", s.Team, err)
		}
		members = append(members, c)
	}
	return combat.NewRoster(s.Team, members)
}
