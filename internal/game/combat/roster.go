package combat

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRoster is returned when a roster is built with no members.
	ErrEmptyRoster = errors.New("roster must have at least one combatant")
	// ErrRosterDefeated is returned when the active member of a defeated roster is requested.
	ErrRosterDefeated = errors.New("roster is defeated and has no active combatant")
)

// Roster is one side of a match: a fixed, ordered list of combatants and the
// member currently fighting.
//
// Invariant: members never change after construction. Once defeated, a roster
// stays defeated and has no active member.
type Roster struct {
	name     string
	members  []*Combatant
	active   int
	defeated bool
}

// NewRoster builds a roster named name from members, in order, and enlists
// every member under that name.
//
// Precondition: name must be non-empty; members must be non-empty, non-nil,
// and not enlisted in any other roster.
// Postcondition: Returns a roster whose active member is the first living
// member, or an error. On error no member is enlisted.
func NewRoster(name string, members []*Combatant) (*Roster, error) {
	if name == "" {
		return nil, errors.New("roster name must not be empty")
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("roster %q: %w", name, ErrEmptyRoster)
	}
	seen := make(map[*Combatant]bool, len(members))
	for i, m := range members {
		if m == nil {
			return nil, fmt.Errorf("roster %q: member %d is nil", name, i)
		}
		if seen[m] {
			return nil, fmt.Errorf("roster %q: %s listed twice", name, m.Name())
		}
		seen[m] = true
		if m.Team() != "" {
			return nil, fmt.Errorf("roster %q: %w: %s is on %q", name, ErrAlreadyEnlisted, m.Name(), m.Team())
		}
	}

	r := &Roster{
		name:    name,
		members: make([]*Combatant, len(members)),
	}
	copy(r.members, members)
	for _, m := range r.members {
		if err := m.enlist(name); err != nil {
			return nil, err
		}
	}
	r.selectActive(nil)
	return r, nil
}

// Name returns the roster name.
func (r *Roster) Name() string { return r.name }

// Members returns the members in their fixed order.
func (r *Roster) Members() []*Combatant {
	cp := make([]*Combatant, len(r.members))
	copy(cp, r.members)
	return cp
}

// Defeated reports whether every member is dead.
func (r *Roster) Defeated() bool { return r.defeated }

// LivingCount returns the number of living members.
func (r *Roster) LivingCount() int {
	n := 0
	for _, m := range r.members {
		if m.Alive() {
			n++
		}
	}
	return n
}

// Active returns the member currently fighting.
//
// Postcondition: Returns ErrRosterDefeated iff the roster is defeated.
func (r *Roster) Active() (*Combatant, error) {
	if r.defeated {
		return nil, fmt.Errorf("roster %q: %w", r.name, ErrRosterDefeated)
	}
	return r.members[r.active], nil
}

// UpdateActive keeps the active member if it is alive, otherwise moves to the
// earliest living member. With none left the roster becomes defeated and an
// EventRosterDefeated is recorded.
//
// Postcondition: Returns Defeated().
func (r *Roster) UpdateActive(log *Log) bool {
	if r.defeated {
		return true
	}
	if r.members[r.active].Alive() {
		return false
	}
	return r.selectActive(log)
}

func (r *Roster) selectActive(log *Log) bool {
	for i, m := range r.members {
		if m.Alive() {
			r.active = i
			return false
		}
	}
	r.defeated = true
	log.record(Event{Type: EventRosterDefeated, Roster: r.name})
	return true
}
