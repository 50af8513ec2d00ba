package combat

// Source is the subset of dice.Source used by the resolver.
// Using a local interface avoids a circular import.
type Source interface {
	Intn(n int) int
}

// Order decides who acts first this turn. The faster combatant goes first;
// on equal speed the order is a fair coin flip drawn from src.
//
// Precondition: a, b, and src must be non-nil.
// Postcondition: {first, second} == {a, b}; randomized is true iff the speeds
// were equal. src is consulted only when randomized.
func Order(a, b *Combatant, src Source) (first, second *Combatant, randomized bool) {
	switch {
	case a.Speed() > b.Speed():
		return a, b, false
	case b.Speed() > a.Speed():
		return b, a, false
	case src.Intn(2) == 0:
		return a, b, true
	default:
		return b, a, true
	}
}

// ResolveTurn plays one turn between the two active combatants: the first
// attacks and runs its end-of-turn effect, then the second does the same if
// it survived.
//
// Precondition: a and b must be alive; src must be non-nil.
// Postcondition: All effects of the turn are applied and recorded in log.
func ResolveTurn(a, b *Combatant, src Source, log *Log) {
	first, second, randomized := Order(a, b, src)
	if randomized {
		log.record(Event{Type: EventOrderRandomized, Actor: first.Snapshot(), Target: second.Snapshot()})
	}

	first.Attack(second, log)
	first.OnEndTurn(log)
	if second.Alive() {
		second.Attack(first, log)
		second.OnEndTurn(log)
	}
}
