package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

func TestNewMatch_Validates(t *testing.T) {
	red := newRoster(t, "Red", newGoblin(t, "RX"))
	src := dice.NewSeededSource(1)

	_, err := combat.NewMatch(nil, red, src)
	assert.Error(t, err)
	_, err = combat.NewMatch(red, red, src)
	assert.Error(t, err)
	_, err = combat.NewMatch(red, newRoster(t, "Blue", newTroll(t, "Zaku")), nil)
	assert.Error(t, err)
}

func TestMatch_GoblinBeatsTroll(t *testing.T) {
	goblin := newGoblin(t, "RX")
	troll := newTroll(t, "Zaku")
	red := newRoster(t, "Red", goblin)
	blue := newRoster(t, "Blue", troll)

	m, err := combat.NewMatch(red, blue, dice.NewSeededSource(1), combat.WithID("m-1"))
	require.NoError(t, err)
	res, events, err := m.Run()
	require.NoError(t, err)

	assert.Equal(t, combat.Result{MatchID: "m-1", Verdict: combat.VerdictFirstWins, Winner: "Red", Turns: 2}, res)
	assert.True(t, goblin.Alive())
	assert.Equal(t, 10, goblin.Health())
	assert.False(t, troll.Alive())
	assert.True(t, blue.Defeated())
	assert.False(t, red.Defeated())

	starts := eventsOfType(events, combat.EventTurnStart)
	require.Len(t, starts, 2)
	assert.Equal(t, 1, starts[0].Turn)
	assert.Equal(t, 100, starts[0].Target.Health)
	assert.Equal(t, 60, starts[1].Target.Health, "troll regenerated 20 after dropping to 40")

	regen := eventsOfType(events, combat.EventRegenerate)
	require.Len(t, regen, 1)
	assert.Equal(t, 1, regen[0].Turn)

	for _, e := range eventsOfType(events, combat.EventAttack) {
		if e.Turn == 2 {
			assert.Equal(t, "RX", e.Actor.Name, "troll never acts in turn 2")
		}
	}
	assert.Empty(t, eventsOfType(events, combat.EventOrderRandomized), "distinct speeds never draw")

	last := events[len(events)-1]
	assert.Equal(t, combat.EventMatchEnd, last.Type)
	assert.Equal(t, combat.VerdictFirstWins, last.Verdict)
	assert.Equal(t, "Red", last.Roster)
}

func TestMatch_GoblinVsTrollHealthTrendsDown(t *testing.T) {
	troll := newTroll(t, "Zaku")
	red := newRoster(t, "Red", newGoblin(t, "RX"))
	blue := newRoster(t, "Blue", troll)
	m, err := combat.NewMatch(red, blue, dice.NewSeededSource(1))
	require.NoError(t, err)

	prev := troll.Health()
	for !m.Over() {
		_, err := m.Step()
		require.NoError(t, err)
		assert.Less(t, troll.Health(), prev, "damage per turn exceeds regeneration")
		prev = troll.Health()
	}
	res, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, "Red", res.Winner)
	assert.LessOrEqual(t, res.Turns, combat.DefaultTurnLimit)
}

func TestMatch_DoubleKnockoutIsTie(t *testing.T) {
	goblin := newCombatant(t, combat.KindGoblin, "RX", combat.Stats{MaxHP: 10, Attack: 30, Speed: 50, Strikes: 2})
	orc := newCombatant(t, combat.KindOrc, "Exia", combat.Stats{MaxHP: 20, Attack: 30, Speed: 30, Block: 10, Reflect: 10})
	red := newRoster(t, "Red", goblin)
	blue := newRoster(t, "Blue", orc)

	m, err := combat.NewMatch(red, blue, dice.NewSeededSource(5))
	require.NoError(t, err)
	events, err := m.Step()
	require.NoError(t, err)

	assert.Equal(t, 0, goblin.Health())
	assert.Equal(t, 0, orc.Health())
	assert.False(t, goblin.Alive())
	assert.False(t, orc.Alive())

	attacks := eventsOfType(events, combat.EventAttack)
	require.Len(t, attacks, 1, "second strike never happens")
	assert.Equal(t, 20, attacks[0].Outcome.Actual)
	assert.Equal(t, 10, attacks[0].Outcome.Reflected)

	deaths := eventsOfType(events, combat.EventDeath)
	require.Len(t, deaths, 2)
	assert.Equal(t, "Exia", deaths[0].Actor.Name)
	assert.Equal(t, "RX", deaths[1].Actor.Name)

	defeats := eventsOfType(events, combat.EventRosterDefeated)
	require.Len(t, defeats, 2)
	assert.Equal(t, "Red", defeats[0].Roster)
	assert.Equal(t, "Blue", defeats[1].Roster)

	res, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, combat.VerdictTie, res.Verdict)
	assert.Empty(t, res.Winner)
	assert.Equal(t, 1, res.Turns)

	_, err = m.Step()
	assert.ErrorIs(t, err, combat.ErrMatchOver)
}

func TestMatch_ReflectKillOnOtherSideUpdatesBothRosters(t *testing.T) {
	// The goblin dies to reflect on its own turn; its roster must move on
	// to the next member even though the goblin's side was the attacker.
	goblin := newCombatant(t, combat.KindGoblin, "RX", combat.Stats{MaxHP: 10, Attack: 30, Speed: 50, Strikes: 2})
	backup := newTroll(t, "Zaku")
	orc := newOrc(t, "Exia")
	red := newRoster(t, "Red", goblin, backup)
	blue := newRoster(t, "Blue", orc)

	m, err := combat.NewMatch(red, blue, dice.NewSeededSource(5))
	require.NoError(t, err)
	_, err = m.Step()
	require.NoError(t, err)

	assert.False(t, goblin.Alive())
	active, err := red.Active()
	require.NoError(t, err)
	assert.Same(t, backup, active)
	assert.False(t, m.Over())
}

func TestMatch_TimeoutAfterTurnLimit(t *testing.T) {
	a := newCombatant(t, combat.KindTroll, "A", combat.Stats{MaxHP: 10, Attack: 0, Speed: 5})
	b := newCombatant(t, combat.KindTroll, "B", combat.Stats{MaxHP: 10, Attack: 0, Speed: 5})
	m, err := combat.NewMatch(newRoster(t, "Red", a), newRoster(t, "Blue", b), dice.NewSeededSource(11))
	require.NoError(t, err)

	res, events, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, combat.VerdictTimeout, res.Verdict)
	assert.Equal(t, combat.DefaultTurnLimit, res.Turns)
	assert.Empty(t, res.Winner)
	assert.Len(t, eventsOfType(events, combat.EventOrderRandomized), combat.DefaultTurnLimit)
	assert.Equal(t, combat.EventMatchEnd, events[len(events)-1].Type)
}

func TestMatch_WithTurnLimit(t *testing.T) {
	a := newCombatant(t, combat.KindTroll, "A", combat.Stats{MaxHP: 10, Speed: 1})
	b := newCombatant(t, combat.KindTroll, "B", combat.Stats{MaxHP: 10, Speed: 2})
	m, err := combat.NewMatch(newRoster(t, "Red", a), newRoster(t, "Blue", b), dice.NewSeededSource(1), combat.WithTurnLimit(3))
	require.NoError(t, err)
	res, _, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, 3, res.Turns)
	assert.Equal(t, combat.VerdictTimeout, res.Verdict)
}

func TestMatch_AlreadyDecidedEndsWithoutTurn(t *testing.T) {
	dead := newGoblin(t, "RX")
	dead.ReduceHealth(50)
	dead.CheckDeath(nil)
	red := newRoster(t, "Red", dead)
	require.True(t, red.Defeated())

	m, err := combat.NewMatch(red, newRoster(t, "Blue", newTroll(t, "Zaku")), dice.NewSeededSource(1))
	require.NoError(t, err)
	events, err := m.Step()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, combat.EventMatchEnd, events[0].Type)
	res, _ := m.Result()
	assert.Equal(t, combat.VerdictSecondWins, res.Verdict)
	assert.Equal(t, "Blue", res.Winner)
	assert.Zero(t, res.Turns)
}

func TestMatch_LogsStartAndFinish(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	red := newRoster(t, "Red", newGoblin(t, "RX"))
	blue := newRoster(t, "Blue", newTroll(t, "Zaku"))
	m, err := combat.NewMatch(red, blue, dice.NewSeededSource(1), combat.WithLogger(zap.New(core)), combat.WithID("m-42"))
	require.NoError(t, err)
	_, _, err = m.Run()
	require.NoError(t, err)

	require.Equal(t, 1, logs.FilterMessage("match created").Len())
	finished := logs.FilterMessage("match finished").All()
	require.Len(t, finished, 1)
	fields := finished[0].ContextMap()
	assert.Equal(t, "m-42", fields["match_id"])
	assert.Equal(t, "first wins", fields["verdict"])
	assert.Equal(t, 2, logs.FilterMessage("turn resolved").Len())
}

func TestMatch_LogsEveryAttackAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	red := newRoster(t, "Red", newGoblin(t, "RX"))
	blue := newRoster(t, "Blue", newTroll(t, "Zaku"))
	m, err := combat.NewMatch(red, blue, dice.NewSeededSource(1), combat.WithLogger(zap.New(core)), combat.WithID("m-7"))
	require.NoError(t, err)
	_, events, err := m.Run()
	require.NoError(t, err)

	attacks := eventsOfType(events, combat.EventAttack)
	logged := logs.FilterMessage("attack resolved").All()
	require.Len(t, logged, len(attacks))
	for i, entry := range logged {
		assert.Equal(t, zap.DebugLevel, entry.Level)
		fields := entry.ContextMap()
		assert.Equal(t, "m-7", fields["match_id"])
		assert.Equal(t, int64(attacks[i].Turn), fields["turn"])
		assert.Equal(t, attacks[i].Actor.Name, fields["attacker"])
		assert.Equal(t, int64(attacks[i].Outcome.Actual), fields["actual"])
	}
	assert.Equal(t, len(eventsOfType(events, combat.EventRegenerate)), logs.FilterMessage("regenerated").Len())
}

func TestMatch_GeneratesID(t *testing.T) {
	m1, err := combat.NewMatch(newRoster(t, "Red", newGoblin(t, "A")), newRoster(t, "Blue", newOrc(t, "B")), dice.NewSeededSource(1))
	require.NoError(t, err)
	m2, err := combat.NewMatch(newRoster(t, "Red", newGoblin(t, "C")), newRoster(t, "Blue", newOrc(t, "D")), dice.NewSeededSource(1))
	require.NoError(t, err)
	assert.NotEmpty(t, m1.ID())
	assert.NotEqual(t, m1.ID(), m2.ID())
}

func TestMatch_Property_Invariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		build := func(label, team string) (*combat.Roster, []*combat.Combatant) {
			n := rapid.IntRange(1, 4).Draw(rt, label+"_size")
			members := make([]*combat.Combatant, n)
			for i := range members {
				kind := rapid.SampledFrom(combat.Kinds).Draw(rt, label+"_kind")
				c, err := combat.NewCombatant(label, kind, label, statsFor(kind))
				require.NoError(rt, err)
				members[i] = c
			}
			r, err := combat.NewRoster(team, members)
			require.NoError(rt, err)
			return r, members
		}
		red, redMembers := build("red", "Red")
		blue, blueMembers := build("blue", "Blue")
		all := append(append([]*combat.Combatant{}, redMembers...), blueMembers...)

		m, err := combat.NewMatch(red, blue, dice.NewSeededSource(seed))
		require.NoError(rt, err)

		dead := map[*combat.Combatant]bool{}
		for !m.Over() {
			events, err := m.Step()
			require.NoError(rt, err)
			for _, e := range eventsOfType(events, combat.EventAttack) {
				assert.LessOrEqual(rt, e.Outcome.Actual, e.Outcome.Attempted)
			}
			for _, c := range all {
				assert.GreaterOrEqual(rt, c.Health(), 0)
				assert.Equal(rt, c.Health() == 0, !c.Alive())
				if dead[c] {
					assert.False(rt, c.Alive(), "no revival")
				}
				if !c.Alive() {
					dead[c] = true
				}
			}
		}

		res, ok := m.Result()
		require.True(rt, ok)
		assert.LessOrEqual(rt, res.Turns, combat.DefaultTurnLimit)
		switch res.Verdict {
		case combat.VerdictTie:
			assert.True(rt, red.Defeated() && blue.Defeated())
		case combat.VerdictFirstWins:
			assert.True(rt, blue.Defeated() && !red.Defeated())
		case combat.VerdictSecondWins:
			assert.True(rt, red.Defeated() && !blue.Defeated())
		case combat.VerdictTimeout:
			assert.False(rt, red.Defeated() || blue.Defeated())
			assert.Equal(rt, combat.DefaultTurnLimit, res.Turns)
		default:
			rt.Fatalf("unexpected verdict %v", res.Verdict)
		}
	})
}
