package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

func TestKind_StringAndLabel(t *testing.T) {
	assert.Equal(t, "goblin", combat.KindGoblin.String())
	assert.Equal(t, "Troll", combat.KindTroll.Label())
	assert.Equal(t, "Orc", combat.KindOrc.Label())
	assert.Equal(t, "unknown", combat.Kind(42).String())
}

func TestParseKind(t *testing.T) {
	for _, k := range combat.Kinds {
		got, err := combat.ParseKind(k.Label())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := combat.ParseKind("dragon")
	assert.Error(t, err)
}

func TestNewCombatant_StartsAliveAtFullHealth(t *testing.T) {
	c := newTroll(t, "Zaku")
	assert.Equal(t, "Zaku", c.Name())
	assert.Equal(t, combat.KindTroll, c.Kind())
	assert.Equal(t, 100, c.Health())
	assert.Equal(t, 100, c.MaxHP())
	assert.True(t, c.Alive())
	assert.Empty(t, c.Team())
}

func TestNewCombatant_RejectsInvalidStats(t *testing.T) {
	tests := []struct {
		name  string
		kind  combat.Kind
		stats combat.Stats
	}{
		{"zero max hp", combat.KindTroll, combat.Stats{MaxHP: 0, Attack: 1}},
		{"negative attack", combat.KindTroll, combat.Stats{MaxHP: 10, Attack: -1}},
		{"goblin without strikes", combat.KindGoblin, combat.Stats{MaxHP: 10, Attack: 1}},
		{"troll negative regen", combat.KindTroll, combat.Stats{MaxHP: 10, Regen: -1}},
		{"orc negative block", combat.KindOrc, combat.Stats{MaxHP: 10, Block: -1}},
		{"orc negative reflect", combat.KindOrc, combat.Stats{MaxHP: 10, Reflect: -1}},
		{"unknown kind", combat.Kind(9), combat.Stats{MaxHP: 10}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := combat.NewCombatant("x", tc.kind, "X", tc.stats)
			assert.Error(t, err)
		})
	}
	_, err := combat.NewCombatant("x", combat.KindOrc, "", orcStats)
	assert.Error(t, err, "empty name must be rejected")
}

func TestCombatant_ReduceHealth_Clamps(t *testing.T) {
	c := newGoblin(t, "RX")
	assert.Equal(t, 20, c.ReduceHealth(20))
	assert.Equal(t, 30, c.Health())
	assert.Equal(t, 30, c.ReduceHealth(500), "applied amount is the clamped amount")
	assert.Equal(t, 0, c.Health())
	assert.True(t, c.Alive(), "ReduceHealth alone never flips alive")
	assert.Equal(t, 0, c.ReduceHealth(-5))
}

func TestCombatant_Property_ReduceHealthNeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 300).Draw(rt, "max_hp")
		hits := rapid.SliceOfN(rapid.IntRange(0, 400), 1, 10).Draw(rt, "hits")
		c, err := combat.NewCombatant("p", combat.KindTroll, "P", combat.Stats{MaxHP: maxHP})
		require.NoError(rt, err)
		for _, h := range hits {
			before := c.Health()
			applied := c.ReduceHealth(h)
			assert.Equal(rt, min(h, before), applied)
			assert.GreaterOrEqual(rt, c.Health(), 0)
		}
	})
}

func TestCombatant_CheckDeath_FiresOnce(t *testing.T) {
	log := combat.NewLog()
	c := newOrc(t, "Exia")

	assert.False(t, c.CheckDeath(log))
	assert.Empty(t, log.Events())

	c.ReduceHealth(c.Health())
	assert.True(t, c.CheckDeath(log))
	assert.True(t, c.CheckDeath(log), "idempotent on a dead combatant")
	assert.False(t, c.Alive())

	deaths := eventsOfType(log.Events(), combat.EventDeath)
	require.Len(t, deaths, 1)
	assert.Equal(t, "Exia", deaths[0].Actor.Name)
	assert.Equal(t, 0, deaths[0].Actor.Health)
}

func TestCombatant_NoRevival(t *testing.T) {
	c := newTroll(t, "Nu")
	c.ReduceHealth(100)
	c.CheckDeath(nil)
	assert.Equal(t, 0, c.Heal(50))
	assert.Equal(t, 0, c.Health())
	c.OnEndTurn(nil)
	assert.False(t, c.Alive())
	assert.Equal(t, 0, c.Health())
}

func TestCombatant_Heal_CapsAtMax(t *testing.T) {
	c := newTroll(t, "Jegan")
	c.ReduceHealth(15)
	assert.Equal(t, 15, c.Heal(20))
	assert.Equal(t, 100, c.Health())
	assert.Equal(t, 0, c.Heal(20))
}

func TestCombatant_Attack_DefaultRecordsOutcome(t *testing.T) {
	log := combat.NewLog()
	troll := newTroll(t, "Zaku")
	goblin := newGoblin(t, "RX")

	troll.Attack(goblin, log)

	attacks := eventsOfType(log.Events(), combat.EventAttack)
	require.Len(t, attacks, 1)
	out := attacks[0].Outcome
	assert.Equal(t, 40, out.Attempted)
	assert.Equal(t, 40, out.Actual)
	assert.False(t, out.HasReflected())
	assert.Equal(t, "Zaku", attacks[0].Actor.Name)
	assert.Equal(t, "RX", attacks[0].Target.Name)
	assert.Equal(t, 10, attacks[0].Target.Health)
}

func TestCombatant_Attack_DeadDefenderIsNoOp(t *testing.T) {
	log := combat.NewLog()
	troll := newTroll(t, "Zaku")
	goblin := newGoblin(t, "RX")
	goblin.ReduceHealth(50)
	goblin.CheckDeath(nil)

	troll.Attack(goblin, log)
	assert.Empty(t, log.Events())
}

func TestCombatant_Attack_KillRecordsDeathAfterAttack(t *testing.T) {
	log := combat.NewLog()
	troll := newTroll(t, "Zaku")
	goblin := newGoblin(t, "RX")
	goblin.ReduceHealth(20)

	troll.Attack(goblin, log)

	events := log.Events()
	require.Len(t, events, 2)
	assert.Equal(t, combat.EventAttack, events[0].Type)
	assert.Equal(t, 30, events[0].Outcome.Actual, "actual is clamped to remaining health")
	assert.Equal(t, combat.EventDeath, events[1].Type)
	assert.Equal(t, "RX", events[1].Actor.Name)
	assert.False(t, goblin.Alive())
	assert.Equal(t, 0, goblin.Health())
}

func TestCombatant_Property_ActualNeverExceedsAttemptedOrHealth(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		attackerKind := rapid.SampledFrom(combat.Kinds).Draw(rt, "attacker_kind")
		defenderKind := rapid.SampledFrom(combat.Kinds).Draw(rt, "defender_kind")
		atk := statsFor(attackerKind)
		atk.Attack = rapid.IntRange(0, 150).Draw(rt, "attack")
		def := statsFor(defenderKind)
		def.MaxHP = rapid.IntRange(1, 150).Draw(rt, "defender_hp")

		attacker, err := combat.NewCombatant("a", attackerKind, "A", atk)
		require.NoError(rt, err)
		defender, err := combat.NewCombatant("d", defenderKind, "D", def)
		require.NoError(rt, err)

		log := combat.NewLog()
		for defender.Alive() && attacker.Alive() && len(log.Events()) < 200 {
			before := defender.Health()
			n := len(eventsOfType(log.Events(), combat.EventAttack))
			attacker.Attack(defender, log)
			attacks := eventsOfType(log.Events(), combat.EventAttack)
			if len(attacks) == n {
				break
			}
			first := attacks[n].Outcome
			assert.LessOrEqual(rt, first.Actual, first.Attempted)
			assert.LessOrEqual(rt, first.Actual, before)
			assert.GreaterOrEqual(rt, defender.Health(), 0)
			assert.GreaterOrEqual(rt, attacker.Health(), 0)
			assert.Equal(rt, defender.Health() == 0, !defender.Alive())
			assert.Equal(rt, attacker.Health() == 0, !attacker.Alive())
		}
	})
}

func TestSnapshot_Label(t *testing.T) {
	s := newOrc(t, "Kyrios").Snapshot()
	assert.Equal(t, "Orc Kyrios", s.Label())
	assert.True(t, s.Alive)
	assert.Equal(t, 70, s.MaxHP)
}
