package combat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

var (
	goblinStats = combat.Stats{MaxHP: 50, Attack: 30, Speed: 50, Strikes: 2}
	trollStats  = combat.Stats{MaxHP: 100, Attack: 40, Speed: 20, Regen: 20}
	orcStats    = combat.Stats{MaxHP: 70, Attack: 30, Speed: 30, Block: 10, Reflect: 10}
)

func statsFor(kind combat.Kind) combat.Stats {
	switch kind {
	case combat.KindGoblin:
		return goblinStats
	case combat.KindTroll:
		return trollStats
	default:
		return orcStats
	}
}

func newCombatant(t testing.TB, kind combat.Kind, name string, stats combat.Stats) *combat.Combatant {
	t.Helper()
	c, err := combat.NewCombatant("id-"+name, kind, name, stats)
	require.NoError(t, err)
	return c
}

func newGoblin(t testing.TB, name string) *combat.Combatant {
	return newCombatant(t, combat.KindGoblin, name, goblinStats)
}

func newTroll(t testing.TB, name string) *combat.Combatant {
	return newCombatant(t, combat.KindTroll, name, trollStats)
}

func newOrc(t testing.TB, name string) *combat.Combatant {
	return newCombatant(t, combat.KindOrc, name, orcStats)
}

func newRoster(t testing.TB, name string, members ...*combat.Combatant) *combat.Roster {
	t.Helper()
	r, err := combat.NewRoster(name, members)
	require.NoError(t, err)
	return r
}

// fixedSource replays vals (modulo n) in order, cycling when exhausted.
type fixedSource struct {
	vals  []int
	calls int
}

func (f *fixedSource) Intn(n int) int {
	v := f.vals[f.calls%len(f.vals)] % n
	f.calls++
	return v
}

func eventsOfType(events []combat.Event, typ combat.EventType) []combat.Event {
	var out []combat.Event
	for _, e := range events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
