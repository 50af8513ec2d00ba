// Package combat implements the turn-based battle engine: combatants and
// their per-kind behaviors, rosters, the turn resolver, and the match loop.
//
// The engine never writes text. Everything that happens is recorded as an
// Event in a Log, and callers render those events however they like.
package combat

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed set of creature kinds.
type Kind int

const (
	// KindGoblin strikes several times per attack.
	KindGoblin Kind = iota
	// KindTroll regenerates at the end of its own turn.
	KindTroll
	// KindOrc blocks part of every hit and reflects flat damage back.
	KindOrc
)

// Kinds lists every creature kind in declaration order.
var Kinds = []Kind{KindGoblin, KindTroll, KindOrc}

// String returns the lowercase kind tag used in content files.
func (k Kind) String() string {
	switch k {
	case KindGoblin:
		return "goblin"
	case KindTroll:
		return "troll"
	case KindOrc:
		return "orc"
	default:
		return "unknown"
	}
}

// Label returns the capitalized display name of the kind.
func (k Kind) Label() string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseKind converts a kind tag (case-insensitive) into a Kind.
//
// Postcondition: Returns the matching Kind or an error naming the bad tag.
func ParseKind(s string) (Kind, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if k.String() == tag {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown creature kind %q", s)
}

// Stats are the fixed base numbers of a combatant. The last four fields are
// kind-specific; each kind reads only its own.
type Stats struct {
	MaxHP  int
	Attack int
	Speed  int

	// Strikes is the number of strikes per attack (goblin).
	Strikes int
	// Regen is the health restored at the end of each own turn (troll).
	Regen int
	// Block is the damage threshold absorbed from every hit (orc).
	Block int
	// Reflect is the flat damage returned to every attacker (orc).
	Reflect int
}

// Validate checks the invariants of s for the given kind.
//
// Postcondition: Returns nil iff MaxHP >= 1, Attack >= 0 and the kind's own
// parameters are in range.
func (s Stats) Validate(kind Kind) error {
	if s.MaxHP < 1 {
		return fmt.Errorf("max hp must be >= 1, got %d", s.MaxHP)
	}
	if s.Attack < 0 {
		return fmt.Errorf("attack must be >= 0, got %d", s.Attack)
	}
	switch kind {
	case KindGoblin:
		if s.Strikes < 1 {
			return fmt.Errorf("goblin strikes must be >= 1, got %d", s.Strikes)
		}
	case KindTroll:
		if s.Regen < 0 {
			return fmt.Errorf("troll regen must be >= 0, got %d", s.Regen)
		}
	case KindOrc:
		if s.Block < 0 {
			return fmt.Errorf("orc block must be >= 0, got %d", s.Block)
		}
		if s.Reflect < 0 {
			return fmt.Errorf("orc reflect must be >= 0, got %d", s.Reflect)
		}
	default:
		return fmt.Errorf("unknown creature kind %d", int(kind))
	}
	return nil
}

// ErrAlreadyEnlisted is returned when a combatant that already belongs to a
// roster is added to another one.
var ErrAlreadyEnlisted = errors.New("combatant already belongs to a roster")

// Combatant is one creature taking part in a match.
//
// Invariant: 0 <= Health() <= MaxHP(). Once Alive() reports false it never
// reports true again.
type Combatant struct {
	id       string
	kind     Kind
	name     string
	team     string
	stats    Stats
	health   int
	alive    bool
	behavior Behavior
}

// NewCombatant creates a living combatant at full health.
//
// Precondition: name must be non-empty; stats must satisfy stats.Validate(kind).
// Postcondition: Returns a combatant with Health() == stats.MaxHP and Alive()
// true, or an error.
func NewCombatant(id string, kind Kind, name string, stats Stats) (*Combatant, error) {
	if name == "" {
		return nil, errors.New("combatant name must not be empty")
	}
	if err := stats.Validate(kind); err != nil {
		return nil, fmt.Errorf("combatant %q: %w", name, err)
	}
	return &Combatant{
		id:       id,
		kind:     kind,
		name:     name,
		stats:    stats,
		health:   stats.MaxHP,
		alive:    true,
		behavior: behaviorFor(kind, stats),
	}, nil
}

// ID returns the combatant's unique identifier.
func (c *Combatant) ID() string { return c.id }

// Kind returns the creature kind.
func (c *Combatant) Kind() Kind { return c.kind }

// Name returns the given name.
func (c *Combatant) Name() string { return c.name }

// Team returns the name of the roster the combatant belongs to, or "" if it
// has not been enlisted yet.
func (c *Combatant) Team() string { return c.team }

// Stats returns the fixed base stats.
func (c *Combatant) Stats() Stats { return c.stats }

// MaxHP returns the maximum health.
func (c *Combatant) MaxHP() int { return c.stats.MaxHP }

// Health returns the current health.
func (c *Combatant) Health() int { return c.health }

// AttackPower returns the damage attempted per strike.
func (c *Combatant) AttackPower() int { return c.stats.Attack }

// Speed returns the speed used to decide turn order.
func (c *Combatant) Speed() int { return c.stats.Speed }

// Alive reports whether the combatant is still in the fight.
func (c *Combatant) Alive() bool { return c.alive }

// enlist assigns the roster name. It may only happen once.
func (c *Combatant) enlist(team string) error {
	if c.team != "" {
		return fmt.Errorf("%w: %s is on %q", ErrAlreadyEnlisted, c.name, c.team)
	}
	c.team = team
	return nil
}

// Attack performs this combatant's attack against defender using its kind's
// behavior.
//
// Precondition: defender must be non-nil.
func (c *Combatant) Attack(defender *Combatant, log *Log) {
	c.behavior.Attack(c, defender, log)
}

// OnEnemyAttack applies an incoming hit of amount from attacker and fills the
// damage fields of out.
//
// Precondition: attacker and out must be non-nil; amount >= 0.
func (c *Combatant) OnEnemyAttack(attacker *Combatant, amount int, out *ActionOutcome) {
	c.behavior.OnEnemyAttack(c, attacker, amount, out)
}

// OnEndTurn runs the kind's end-of-turn effect.
func (c *Combatant) OnEndTurn(log *Log) {
	c.behavior.OnEndTurn(c, log)
}

// ReduceHealth lowers health by amount without going below zero. It does not
// change Alive(); CheckDeath does that.
//
// Postcondition: Returns the amount actually removed, min(max(amount, 0), health before).
func (c *Combatant) ReduceHealth(amount int) int {
	if amount < 0 {
		amount = 0
	}
	applied := min(amount, c.health)
	c.health -= applied
	return applied
}

// Heal raises health by amount without exceeding MaxHP. Dead combatants are
// never healed.
//
// Postcondition: Returns the amount actually restored.
func (c *Combatant) Heal(amount int) int {
	if !c.alive || amount <= 0 {
		return 0
	}
	restored := min(amount, c.stats.MaxHP-c.health)
	c.health += restored
	return restored
}

// CheckDeath flips the combatant to dead the first time its health is found
// at zero, recording an EventDeath on that transition only.
//
// Postcondition: Returns true iff the combatant is dead. Repeated calls on a
// dead combatant record nothing.
func (c *Combatant) CheckDeath(log *Log) bool {
	if !c.alive {
		return true
	}
	if c.health > 0 {
		return false
	}
	c.alive = false
	log.record(Event{Type: EventDeath, Actor: c.Snapshot()})
	return true
}

// Snapshot captures the combatant's identity and vitals for reporting.
func (c *Combatant) Snapshot() Snapshot {
	return Snapshot{
		ID:     c.id,
		Kind:   c.kind,
		Name:   c.name,
		Team:   c.team,
		Health: c.health,
		MaxHP:  c.stats.MaxHP,
		Alive:  c.alive,
	}
}

// Snapshot is an immutable view of a combatant at one point in time.
type Snapshot struct {
	ID     string
	Kind   Kind
	Name   string
	Team   string
	Health int
	MaxHP  int
	Alive  bool
}

// Label returns "<Kind> <Name>", e.g. "Goblin Zaku".
func (s Snapshot) Label() string {
	return s.Kind.Label() + " " + s.Name
}
