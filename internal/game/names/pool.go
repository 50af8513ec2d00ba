// Package names hands out unique display names to spawned combatants.
package names

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// ErrPoolExhausted is returned by Pop when every name has been handed out.
var ErrPoolExhausted = errors.New("name pool exhausted")

var defaultNames = []string{
	"RX", "Zaku", "Wing", "Zero", "Deathscythe", "Heavyarms",
	"Sandrock", "Tallgeese", "Unicorn", "Banshee", "Barbatos", "Astaroth",
	"Exia", "Dynames", "Kyrios", "Virtue", "Strike", "Freedom", "Justice",
	"Providence", "Destiny", "Impulse", "Legend", "Quanta", "OO", "Turna",
	"Burning", "Shining", "Epyon", "Kshatriya", "Sinanju", "ZGMF", "Alex",
	"Jesta", "Nu", "Jegan", "ReZEL", "ReGZ", "Guntank", "Guncannon",
	"Zeta", "ZZ", "Xi", "Sazabi", "Duel", "Buster", "Blitz", "Aegis",
	"Astray", "Akatsuki",
}

// Default returns a copy of the built-in name list.
func Default() []string {
	out := make([]string, len(defaultNames))
	copy(out, defaultNames)
	return out
}

// Pool is a shuffled, draw-without-replacement list of names.
// Pool is safe for concurrent use.
type Pool struct {
	mu    sync.Mutex
	names []string
}

// NewPool builds a pool from names, dropping blanks and duplicates, and
// shuffles it with src.
//
// Precondition: src must be non-nil.
// Postcondition: Remaining() equals the number of distinct non-blank names.
func NewPool(names []string, src dice.Source) *Pool {
	seen := make(map[string]bool, len(names))
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		uniq = append(uniq, n)
	}
	dice.Shuffle(src, len(uniq), func(i, j int) {
		uniq[i], uniq[j] = uniq[j], uniq[i]
	})
	return &Pool{names: uniq}
}

// Pop removes and returns the last name in the pool.
//
// Postcondition: Returns ErrPoolExhausted when the pool is empty; a name is
// never returned twice.
func (p *Pool) Pop() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.names) == 0 {
		return "", ErrPoolExhausted
	}
	last := len(p.names) - 1
	name := p.names[last]
	p.names = p.names[:last]
	return name, nil
}

// Remaining reports how many names are left.
func (p *Pool) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.names)
}

type nameFile struct {
	Names []string `yaml:"names"`
}

// LoadFile reads a YAML document of the form `names: [a, b, ...]`.
//
// Precondition: path must name a readable file.
// Postcondition: Returns at least one name, or an error.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading name file %q: %w", path, err)
	}
	var nf nameFile
	if err := yaml.Unmarshal(data, &nf); err != nil {
		return nil, fmt.Errorf("parsing name file %q: %w", path, err)
	}
	if len(nf.Names) == 0 {
		return nil, fmt.Errorf("name file %q: names must not be empty", path)
	}
	return nf.Names, nil
}
