package combat

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTurnLimit is the number of turns after which an undecided match is
// stopped as a timeout.
const DefaultTurnLimit = 100

// ErrMatchOver is returned by Step once the match has a verdict.
var ErrMatchOver = errors.New("match is already over")

// Verdict is the terminal outcome of a match.
type Verdict int

const (
	VerdictPending   Verdict = iota // match still running
	VerdictFirstWins                // second roster defeated, first still standing
	VerdictSecondWins               // first roster defeated, second still standing
	VerdictTie                      // both rosters defeated in the same turn
	VerdictTimeout                  // turn limit reached with both rosters standing
)

// String returns a human-readable verdict label.
func (v Verdict) String() string {
	switch v {
	case VerdictPending:
		return "pending"
	case VerdictFirstWins:
		return "first wins"
	case VerdictSecondWins:
		return "second wins"
	case VerdictTie:
		return "tie"
	case VerdictTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Result summarizes a finished match.
type Result struct {
	MatchID string
	Verdict Verdict
	// Winner is the winning roster's name; empty for a tie or timeout.
	Winner string
	Turns  int
}

// Match runs turns between two rosters until one side is gone or the turn
// limit is hit. A Match is not safe for concurrent use.
type Match struct {
	id        string
	first     *Roster
	second    *Roster
	src       Source
	turnLimit int
	logger    *zap.Logger
	log       *Log
	turn      int
	result    *Result
}

// Option configures a Match.
type Option func(*Match)

// WithTurnLimit overrides DefaultTurnLimit. Values below 1 are ignored.
func WithTurnLimit(n int) Option {
	return func(m *Match) {
		if n >= 1 {
			m.turnLimit = n
		}
	}
}

// WithLogger attaches a diagnostic logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Match) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithID sets the match ID instead of generating a random UUID.
func WithID(id string) Option {
	return func(m *Match) {
		if id != "" {
			m.id = id
		}
	}
}

// NewMatch prepares a match between first and second.
//
// Precondition: first, second, and src must be non-nil and first != second.
// Postcondition: Returns a match at turn 0 or an error.
func NewMatch(first, second *Roster, src Source, opts ...Option) (*Match, error) {
	if first == nil || second == nil {
		return nil, errors.New("match requires two rosters")
	}
	if first == second {
		return nil, fmt.Errorf("roster %q cannot fight itself", first.Name())
	}
	if src == nil {
		return nil, errors.New("match requires a random source")
	}
	m := &Match{
		id:        uuid.NewString(),
		first:     first,
		second:    second,
		src:       src,
		turnLimit: DefaultTurnLimit,
		logger:    zap.NewNop(),
		log:       NewLog(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(zap.String("match_id", m.id))
	m.log.SetLogger(m.logger)
	m.logger.Info("match created",
		zap.String("first", first.Name()),
		zap.Int("first_size", len(first.members)),
		zap.String("second", second.Name()),
		zap.Int("second_size", len(second.members)),
		zap.Int("turn_limit", m.turnLimit),
	)
	return m, nil
}

// ID returns the match identifier.
func (m *Match) ID() string { return m.id }

// Turn returns the number of turns played so far.
func (m *Match) Turn() int { return m.turn }

// Over reports whether the match has a verdict.
func (m *Match) Over() bool { return m.result != nil }

// Result returns the final result once the match is over.
//
// Postcondition: Returns (result, true) iff Over().
func (m *Match) Result() (Result, bool) {
	if m.result == nil {
		return Result{}, false
	}
	return *m.result, true
}

// Step plays one turn and returns the events it produced. When the turn ends
// the match, the returned events finish with EventMatchEnd. A match whose
// rosters are already decided before any turn ends without playing one.
//
// Postcondition: Returns ErrMatchOver iff the match was already over.
func (m *Match) Step() ([]Event, error) {
	if m.result != nil {
		return nil, ErrMatchOver
	}
	if m.decided() {
		m.finish()
		return m.log.Drain(), nil
	}

	a, err := m.first.Active()
	if err != nil {
		return nil, err
	}
	b, err := m.second.Active()
	if err != nil {
		return nil, err
	}

	m.turn++
	m.log.SetTurn(m.turn)
	m.log.record(Event{Type: EventTurnStart, Actor: a.Snapshot(), Target: b.Snapshot()})

	ResolveTurn(a, b, m.src, m.log)

	m.first.UpdateActive(m.log)
	m.second.UpdateActive(m.log)

	m.logger.Debug("turn resolved",
		zap.Int("turn", m.turn),
		zap.String("first_active", a.Name()),
		zap.Int("first_health", a.Health()),
		zap.String("second_active", b.Name()),
		zap.Int("second_health", b.Health()),
	)

	if m.decided() {
		m.finish()
	}
	return m.log.Drain(), nil
}

// Run plays turns until the match is over and returns the result together
// with every event of the match in order.
func (m *Match) Run() (Result, []Event, error) {
	var all []Event
	for !m.Over() {
		events, err := m.Step()
		if err != nil {
			return Result{}, all, err
		}
		all = append(all, events...)
	}
	res, _ := m.Result()
	return res, all, nil
}

func (m *Match) decided() bool {
	return m.first.Defeated() || m.second.Defeated() || m.turn >= m.turnLimit
}

func (m *Match) finish() {
	res := Result{MatchID: m.id, Turns: m.turn}
	switch {
	case m.first.Defeated() && m.second.Defeated():
		res.Verdict = VerdictTie
	case m.second.Defeated():
		res.Verdict = VerdictFirstWins
		res.Winner = m.first.Name()
	case m.first.Defeated():
		res.Verdict = VerdictSecondWins
		res.Winner = m.second.Name()
	default:
		res.Verdict = VerdictTimeout
	}
	m.result = &res
	m.log.record(Event{Type: EventMatchEnd, Verdict: res.Verdict, Roster: res.Winner})
	m.logger.Info("match finished",
		zap.Stringer("verdict", res.Verdict),
		zap.String("winner", res.Winner),
		zap.Int("turns", res.Turns),
	)
}
