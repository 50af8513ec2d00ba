package combat

import "go.uber.org/zap"

// EventType identifies what an Event describes.
// The zero value (EventUnknown) is intentionally invalid.
type EventType int

const (
	EventUnknown         EventType = iota
	EventTurnStart                 // a new turn began; Actor and Target are the two active combatants
	EventOrderRandomized           // speeds tied and the order was drawn at random
	EventAttack                    // Actor struck Target; Outcome holds the damage
	EventRegenerate                // Actor healed Amount; Capped when MaxHP cut the heal short
	EventDeath                     // Actor died
	EventRosterDefeated            // Roster has no living members left
	EventMatchEnd                  // the match is over; Verdict and Roster (winner) are set
)

// String returns a short name for the event type.
func (t EventType) String() string {
	switch t {
	case EventTurnStart:
		return "turn_start"
	case EventOrderRandomized:
		return "order_randomized"
	case EventAttack:
		return "attack"
	case EventRegenerate:
		return "regenerate"
	case EventDeath:
		return "death"
	case EventRosterDefeated:
		return "roster_defeated"
	case EventMatchEnd:
		return "match_end"
	default:
		return "unknown"
	}
}

// Event is one fact produced by the engine. Only the fields relevant to Type
// are populated.
type Event struct {
	Type    EventType
	Turn    int
	Actor   Snapshot
	Target  Snapshot
	Outcome ActionOutcome
	Amount  int
	Capped  bool
	Roster  string
	Verdict Verdict
}

// Log accumulates events in the order they happen. A nil *Log discards
// everything, which keeps unit-level calls free of bookkeeping.
type Log struct {
	turn   int
	events []Event
	logger *zap.Logger
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{}
}

// SetLogger routes engine diagnostics for recorded actions to logger.
func (l *Log) SetLogger(logger *zap.Logger) {
	if l != nil {
		l.logger = logger
	}
}

// SetTurn stamps subsequent events with turn.
func (l *Log) SetTurn(turn int) {
	if l != nil {
		l.turn = turn
	}
}

// Events returns a copy of everything recorded and not yet drained.
func (l *Log) Events() []Event {
	if l == nil {
		return nil
	}
	cp := make([]Event, len(l.events))
	copy(cp, l.events)
	return cp
}

// Drain returns the recorded events and empties the log.
func (l *Log) Drain() []Event {
	if l == nil {
		return nil
	}
	out := l.events
	l.events = nil
	return out
}

func (l *Log) record(e Event) {
	if l == nil {
		return
	}
	e.Turn = l.turn
	l.events = append(l.events, e)
}

func (l *Log) debug(msg string, fields ...zap.Field) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Debug(msg, append(fields, zap.Int("turn", l.turn))...)
}
