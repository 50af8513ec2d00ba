// Package runner plays a scenario script battle by battle, narrating every
// event through a renderer and optional scripted commentary.
package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/bestiary"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/names"
	"github.com/cory-johannsen/skirmish/internal/game/scenario"
	"github.com/cory-johannsen/skirmish/internal/render"
	"github.com/cory-johannsen/skirmish/internal/scripting"
)

// Commentator produces optional remarks for engine events.
type Commentator interface {
	Commentary(e combat.Event) (string, bool)
}

// Config wires the collaborators of a Runner.
type Config struct {
	Bestiary *bestiary.Bestiary
	Names    *names.Pool
	Source   dice.Source
	Renderer *render.Renderer
	// Commentary may be nil to run without scripted remarks.
	Commentary Commentator
	Logger     *zap.Logger
	// TurnLimit of 0 uses combat.DefaultTurnLimit.
	TurnLimit  int
	ShowLineup bool
}

// Runner plays scripts. A Runner is not safe for concurrent use.
type Runner struct {
	cfg Config
}

var _ Commentator = (*scripting.Manager)(nil)

// New creates a Runner.
//
// Precondition: Bestiary, Names, Source and Renderer must be non-nil.
// Postcondition: Returns a non-nil Runner; a nil Logger is replaced by a no-op logger.
func New(cfg Config) *Runner {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.TurnLimit <= 0 {
		cfg.TurnLimit = combat.DefaultTurnLimit
	}
	return &Runner{cfg: cfg}
}

// Run plays every battle of script in order and returns the result of each
// finished battle. Cancelling ctx stops the run between turns.
//
// Postcondition: On error the results of the battles finished so far are
// returned together with the error.
func (r *Runner) Run(ctx context.Context, script *scenario.Script) ([]combat.Result, error) {
	start := time.Now()
	if need, have := script.Names(), r.cfg.Names.Remaining(); need > have {
		return nil, fmt.Errorf("script needs %d names, pool has %d: %w", need, have, names.ErrPoolExhausted)
	}

	r.cfg.Renderer.Banner()
	results := make([]combat.Result, 0, len(script.Battles))
	for i, b := range script.Battles {
		res, err := r.playBattle(ctx, i+1, b)
		if err != nil {
			r.cfg.Renderer.Error(err)
			r.cfg.Logger.Error("battle failed",
				zap.Int("battle", i+1),
				zap.String("name", b.Name),
				zap.Error(err),
			)
			return results, err
		}
		results = append(results, res)
	}

	r.cfg.Logger.Info("run complete",
		zap.Int("battles", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, r.cfg.Renderer.Err()
}

func (r *Runner) playBattle(ctx context.Context, n int, b scenario.Battle) (combat.Result, error) {
	if err := ctx.Err(); err != nil {
		return combat.Result{}, err
	}
	battleStart := time.Now()
	rend := r.cfg.Renderer
	rend.Battle(n, b.Name)

	first, second, err := b.Build(r.cfg.Bestiary, r.cfg.Names, r.cfg.Source)
	if err != nil {
		return combat.Result{}, err
	}
	if r.cfg.ShowLineup {
		rend.Lineup(first, second)
	}

	m, err := combat.NewMatch(first, second, r.cfg.Source,
		combat.WithTurnLimit(r.cfg.TurnLimit),
		combat.WithLogger(r.cfg.Logger.With(zap.Int("battle", n))),
	)
	if err != nil {
		return combat.Result{}, err
	}

	for !m.Over() {
		if err := ctx.Err(); err != nil {
			return combat.Result{}, fmt.Errorf("battle %d interrupted at turn %d: %w", n, m.Turn(), err)
		}
		events, err := m.Step()
		if err != nil {
			return combat.Result{}, err
		}
		r.narrate(events)
		if err := rend.Err(); err != nil {
			return combat.Result{}, fmt.Errorf("writing narration: %w", err)
		}
	}

	res, _ := m.Result()
	rend.Outcome(res)
	r.cfg.Logger.Info("battle finished",
		zap.Int("battle", n),
		zap.String("name", b.Name),
		zap.String("match_id", res.MatchID),
		zap.Stringer("verdict", res.Verdict),
		zap.Duration("elapsed", time.Since(battleStart)),
	)
	return res, rend.Err()
}

func (r *Runner) narrate(events []combat.Event) {
	for _, e := range events {
		r.cfg.Renderer.Event(e)
		if r.cfg.Commentary == nil {
			continue
		}
		if text, ok := r.cfg.Commentary.Commentary(e); ok {
			r.cfg.Renderer.Commentary(text)
		}
	}
}
