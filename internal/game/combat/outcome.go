package combat

// Unset marks an ActionOutcome field that the exchange never filled in.
const Unset = -1

// ActionOutcome is the result of a single strike. Each field is either Unset
// or a non-negative amount.
type ActionOutcome struct {
	// Attempted is the attacker's raw damage.
	Attempted int
	// Actual is the damage the defender's health really lost.
	Actual int
	// Reflected is the damage the defender sent back to the attacker.
	Reflected int
}

// NewActionOutcome returns an outcome with every field Unset.
func NewActionOutcome() ActionOutcome {
	return ActionOutcome{Attempted: Unset, Actual: Unset, Reflected: Unset}
}

// HasAttempted reports whether Attempted was set.
func (o ActionOutcome) HasAttempted() bool { return o.Attempted != Unset }

// HasActual reports whether Actual was set.
func (o ActionOutcome) HasActual() bool { return o.Actual != Unset }

// HasReflected reports whether Reflected was set.
func (o ActionOutcome) HasReflected() bool { return o.Reflected != Unset }
