// Package main provides the skirmish binary, which plays a scripted series of
// battles between creature rosters and narrates them on stdout.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/bestiary"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/names"
	"github.com/cory-johannsen/skirmish/internal/game/scenario"
	"github.com/cory-johannsen/skirmish/internal/observability"
	"github.com/cory-johannsen/skirmish/internal/render"
	"github.com/cory-johannsen/skirmish/internal/runner"
	"github.com/cory-johannsen/skirmish/internal/scripting"
)

// commentaryStream selects the seed stream for scripted commentary. Scripts
// draw from it so battles depend on the run seed alone.
const commentaryStream = 1

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults")
	seed := flag.Uint64("seed", 0, "random seed; overrides match.seed when non-zero")
	scenariosFile := flag.String("scenarios", "", "scenario YAML file; overrides content.scenarios_file")
	scriptDir := flag.String("scripts", "", "directory of Lua commentary hooks; overrides content.script_dir")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *seed != 0 {
		cfg.Match.Seed = *seed
	}
	if *scenariosFile != "" {
		cfg.Content.ScenariosFile = *scenariosFile
	}
	if *scriptDir != "" {
		cfg.Content.ScriptDir = *scriptDir
	}
	if *noColor {
		cfg.Render.Color = false
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Match.Seed == 0 {
		cfg.Match.Seed, err = dice.NewSeed()
		if err != nil {
			logger.Fatal("drawing seed", zap.Error(err))
		}
	}
	runID := uuid.NewString()
	logger = observability.RunLogger(logger, runID, cfg.Match.Seed)

	var src dice.Source = dice.NewSeededSource(cfg.Match.Seed)
	if cfg.Match.LogDraws {
		src = dice.NewLoggedSource(src, logger)
	}

	logger.Info("starting skirmish",
		zap.Int("turn_limit", cfg.Match.TurnLimit),
	)

	beasts, err := bestiary.Load(cfg.Content.BestiaryDir)
	if err != nil {
		logger.Fatal("loading bestiary", zap.Error(err))
	}
	logger.Info("bestiary loaded",
		zap.String("dir", cfg.Content.BestiaryDir),
		zap.Int("kinds", len(beasts.Kinds())),
	)

	nameList := names.Default()
	if cfg.Content.NamesFile != "" {
		nameList, err = names.LoadFile(cfg.Content.NamesFile)
		if err != nil {
			logger.Fatal("loading names", zap.Error(err))
		}
	}
	pool := names.NewPool(nameList, src)

	script := scenario.Default()
	if cfg.Content.ScenariosFile != "" {
		script, err = scenario.Load(cfg.Content.ScenariosFile)
		if err != nil {
			logger.Fatal("loading scenarios", zap.Error(err))
		}
	}
	logger.Info("scenarios loaded",
		zap.Int("battles", len(script.Battles)),
		zap.Int("names_available", pool.Remaining()),
	)

	rcfg := runner.Config{
		Bestiary:   beasts,
		Names:      pool,
		Source:     src,
		Renderer:   render.New(os.Stdout, cfg.Render.Color),
		Logger:     logger,
		TurnLimit:  cfg.Match.TurnLimit,
		ShowLineup: cfg.Render.ShowLineup,
	}
	if cfg.Content.ScriptDir != "" {
		var commentarySrc dice.Source = dice.NewSeededSource(dice.DeriveSeed(cfg.Match.Seed, commentaryStream))
		if cfg.Match.LogDraws {
			commentarySrc = dice.NewLoggedSource(commentarySrc, logger.With(zap.String("stream", "commentary")))
		}
		scriptMgr := scripting.NewManager(commentarySrc, logger)
		if err := scriptMgr.Load(cfg.Content.ScriptDir, cfg.Content.ScriptInstructionLimit); err != nil {
			logger.Fatal("loading commentary scripts", zap.Error(err))
		}
		defer scriptMgr.Close()
		rcfg.Commentary = scriptMgr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := runner.New(rcfg).Run(ctx, script)
	if err != nil {
		logger.Error("run aborted",
			zap.Int("battles_played", len(results)),
			zap.Error(err),
		)
		logger.Sync() //nolint:errcheck
		os.Exit(1)
	}

	logger.Info("skirmish complete",
		zap.Int("battles", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
}
