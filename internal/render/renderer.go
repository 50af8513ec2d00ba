package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

const ruleWidth = 119

// Renderer writes battle narration to w. Write errors are sticky: after the
// first failure every call is a no-op and Err reports it.
type Renderer struct {
	w     io.Writer
	color bool
	err   error
}

// New returns a Renderer writing to w, with ANSI colors when color is set.
//
// Precondition: w must be non-nil.
func New(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

// Err returns the first write error, if any.
func (r *Renderer) Err() error { return r.err }

func (r *Renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *Renderer) paint(team, text string) string {
	if !r.color {
		return text
	}
	return Colorize(TeamColor(team), text)
}

// Identity returns "<Team> <Kind> <Name>" in the team's color.
func (r *Renderer) Identity(s combat.Snapshot) string {
	return r.paint(s.Team, s.Team+" "+s.Label())
}

// Member returns the status tag of a combatant. The left form is
// "[ Team | Kind Name (hp) ]"; the mirrored right form is
// "[ Kind Name (hp) | Team ]".
func (r *Renderer) Member(s combat.Snapshot, right bool) string {
	var text string
	if right {
		text = fmt.Sprintf("[ %s (%d) | %s ]", s.Label(), s.Health, s.Team)
	} else {
		text = fmt.Sprintf("[ %s | %s (%d) ]", s.Team, s.Label(), s.Health)
	}
	return r.paint(s.Team, text)
}

// Banner writes the double rule that opens a run.
func (r *Renderer) Banner() {
	r.write("\n" + strings.Repeat("=", ruleWidth) + "\n")
}

// Battle writes the heading for the n-th battle.
func (r *Renderer) Battle(n int, name string) {
	if name == "" {
		r.write(fmt.Sprintf("\nBattle #%d\n", n))
		return
	}
	r.write(fmt.Sprintf("\nBattle #%d: %s\n", n, name))
}

// Lineup writes both rosters side by side. The left column is padded to its
// widest entry measured without escape sequences.
func (r *Renderer) Lineup(first, second *combat.Roster) {
	left := make([]string, 0, len(first.Members()))
	for _, m := range first.Members() {
		left = append(left, r.Member(m.Snapshot(), false))
	}
	right := make([]string, 0, len(second.Members()))
	for _, m := range second.Members() {
		right = append(right, r.Member(m.Snapshot(), true))
	}

	width := 0
	for _, l := range left {
		width = max(width, PlainWidth(l))
	}

	var b strings.Builder
	for i := 0; i < max(len(left), len(right)); i++ {
		switch {
		case i < len(left) && i < len(right):
			b.WriteString(left[i])
			b.WriteString(strings.Repeat(" ", width-PlainWidth(left[i])+3))
			b.WriteString(right[i])
		case i < len(left):
			b.WriteString(left[i])
		default:
			b.WriteString(strings.Repeat(" ", width+3))
			b.WriteString(right[i])
		}
		b.WriteString("\n")
	}
	r.write(b.String())
}

// Event writes the narration line for a single event.
func (r *Renderer) Event(e combat.Event) {
	switch e.Type {
	case combat.EventTurnStart:
		r.write(fmt.Sprintf("\nTurn %d\n%s ... %s\n", e.Turn, r.Member(e.Actor, false), r.Member(e.Target, true)))
	case combat.EventOrderRandomized:
		r.write("Randomly deciding order\n")
	case combat.EventAttack:
		r.write(r.attackLine(e) + "\n")
	case combat.EventRegenerate:
		line := fmt.Sprintf("%s regenerates %d health to %d", r.Identity(e.Actor), e.Amount, e.Actor.Health)
		if e.Capped {
			line += " (max)"
		}
		r.write(line + "\n")
	case combat.EventDeath:
		r.write(r.Identity(e.Actor) + " has died!\n")
	case combat.EventRosterDefeated:
		r.write(e.Roster + " Team is defeated!\n")
	case combat.EventMatchEnd:
		r.write("Battle Over!\n")
	}
}

func (r *Renderer) attackLine(e combat.Event) string {
	line := fmt.Sprintf("%s attacks %s for %d damage; dealing %d damage; remain: %d",
		r.Identity(e.Actor), r.Identity(e.Target), e.Outcome.Attempted, e.Outcome.Actual, e.Target.Health)
	if e.Outcome.HasReflected() {
		line += fmt.Sprintf("; %d reflected", e.Outcome.Reflected)
	}
	return line
}

// Events writes every event in order.
func (r *Renderer) Events(events []combat.Event) {
	for _, e := range events {
		r.Event(e)
	}
}

// Commentary writes a scripted remark.
func (r *Renderer) Commentary(text string) {
	if text == "" {
		return
	}
	if r.color {
		text = Colorize(Dim, text)
	}
	r.write("  > " + text + "\n")
}

// Outcome writes the result summary and closes the battle with a rule.
func (r *Renderer) Outcome(res combat.Result) {
	var line string
	switch res.Verdict {
	case combat.VerdictFirstWins, combat.VerdictSecondWins:
		line = fmt.Sprintf("%s Team wins after %d turns", r.paint(res.Winner, res.Winner), res.Turns)
	case combat.VerdictTie:
		line = fmt.Sprintf("Both teams fell after %d turns", res.Turns)
	case combat.VerdictTimeout:
		line = fmt.Sprintf("No winner after %d turns", res.Turns)
	default:
		line = "Battle still running"
	}
	r.write(line + "\n\n" + strings.Repeat("-", ruleWidth) + "\n")
}

// Error writes a failure notice for a battle that could not be played.
func (r *Renderer) Error(err error) {
	if r.color {
		r.write(Colorf(Bold+Red, "error: %v", err) + "\n")
		return
	}
	r.write("error: " + err.Error() + "\n")
}
