package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// Commentary runs the hook matching e and returns the remark it produced.
//
//	EventTurnStart       on_turn(turn, first, second)
//	EventDeath           on_death(combatant)
//	EventRosterDefeated  on_defeat(roster)
//	EventMatchEnd        on_match_end(verdict, winner, turn)
//
// Combatants are passed as tables with id, kind, name, team, health, max_hp
// and alive fields.
//
// Postcondition: Returns (text, true) only when the hook returned a non-empty
// string; every other event type yields ("", false).
func (m *Manager) Commentary(e combat.Event) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	L := m.state
	if L == nil {
		return "", false
	}

	var (
		hook string
		args []lua.LValue
	)
	switch e.Type {
	case combat.EventTurnStart:
		hook = HookTurn
		args = []lua.LValue{lua.LNumber(e.Turn), snapshotTable(L, e.Actor), snapshotTable(L, e.Target)}
	case combat.EventDeath:
		hook = HookDeath
		args = []lua.LValue{snapshotTable(L, e.Actor)}
	case combat.EventRosterDefeated:
		hook = HookDefeat
		args = []lua.LValue{lua.LString(e.Roster)}
	case combat.EventMatchEnd:
		hook = HookMatchEnd
		args = []lua.LValue{lua.LString(e.Verdict.String()), lua.LString(e.Roster), lua.LNumber(e.Turn)}
	default:
		return "", false
	}

	ret, err := m.callLocked(hook, args...)
	if err != nil {
		return "", false
	}
	s, ok := ret.(lua.LString)
	if !ok || s == "" {
		return "", false
	}
	return string(s), true
}

func snapshotTable(L *lua.LState, s combat.Snapshot) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "id", lua.LString(s.ID))
	L.SetField(t, "kind", lua.LString(s.Kind.String()))
	L.SetField(t, "name", lua.LString(s.Name))
	L.SetField(t, "team", lua.LString(s.Team))
	L.SetField(t, "health", lua.LNumber(s.Health))
	L.SetField(t, "max_hp", lua.LNumber(s.MaxHP))
	L.SetField(t, "alive", lua.LBool(s.Alive))
	return t
}
