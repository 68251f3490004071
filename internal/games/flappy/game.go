// Package flappy adapts the simulation engine to the arcade Game interface.
// It turns input frames into Flap/Reset calls, drives the engine's clock
// from the tick counter, and draws the world onto the cell grid.
package flappy

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// Visual characters for rendering
const (
	FlyerChar     = '●'
	FlyerBeak     = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
)

// RestartPrompt is shown while the round is over.
const RestartPrompt = "Press Enter to restart"

// Game implements registry.Game on top of sim.Engine.
type Game struct {
	id      string
	title   string
	cfg     config.FlappyConfig
	pending *config.FlappyConfig // Applied on the next restart
	scoring config.ScoringMode   // Pinned scoring mode; empty follows cfg
	fixed   bool                 // Scoring pinned by the variant itself
	engine  *sim.Engine
	runtime core.RuntimeConfig
	tick    time.Duration // Duration of one tick at the runtime tick rate
	ticks   int64         // Ticks since the last Reset(runtime)
}

// New creates a game with the given identity and configuration.
// The engine is seeded with 0 until Reset supplies a runtime seed.
func New(id, title string, cfg config.FlappyConfig) (*Game, error) {
	g := &Game{
		id:    id,
		title: title,
		cfg:   cfg,
	}
	if err := g.rebuild(0); err != nil {
		return nil, err
	}
	g.setRuntime(core.DefaultConfig())
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Config returns the configuration of the running engine.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Snapshot returns a copy of the simulation state.
func (g *Game) Snapshot() sim.State {
	return g.engine.State()
}

// Walls returns the wall rectangles of gate in world units.
func (g *Game) Walls(gate sim.Gate) (top, bottom core.RectF) {
	return g.engine.Walls(gate)
}

// GatesSpawned returns how many gates the current round has spawned.
func (g *Game) GatesSpawned() int {
	return g.engine.GatesSpawned()
}

// Reset starts a fresh session: the engine is rebuilt with a generator
// seeded from runtime.Seed and the tick clock starts over.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.setRuntime(runtime)
	g.applyPending()
	// cfg was validated when it was accepted, so rebuild cannot fail here.
	_ = g.rebuild(runtime.Seed)
}

// PinScoring keeps mode across reloads, for the running config and every
// later one. It is a no-op on variants that fix their own scoring.
func (g *Game) PinScoring(mode config.ScoringMode) error {
	if g.fixed {
		return nil
	}
	if _, err := config.ParseScoringMode(string(mode)); err != nil {
		return err
	}
	g.scoring = mode
	if g.pending != nil {
		g.pending.Scoring = mode
	}
	if g.cfg.Scoring != mode {
		g.cfg.Scoring = mode
		return g.rebuild(g.runtime.Seed)
	}
	return nil
}

// Reconfigure validates cfg and schedules it for the next restart.
// A pinned scoring mode replaces the one in cfg.
func (g *Game) Reconfigure(cfg config.FlappyConfig) error {
	if g.scoring != "" {
		cfg.Scoring = g.scoring
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	g.pending = &cfg
	return nil
}

// Step advances the game by one tick.
// Restart is only honored once the round is over and consumes the tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.engine.Phase() == sim.PhaseOver {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) && g.engine.Phase() == sim.PhasePlaying {
		g.engine.Flap()
	}

	wasOver := g.engine.Phase() == sim.PhaseOver
	before := g.engine.Score()

	g.ticks++
	g.engine.Advance(1, time.Duration(g.ticks)*g.tick)

	state := g.State()
	return core.StepResult{
		State:  state,
		Scored: state.Score != before,
		Ended:  !wasOver && state.GameOver,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.Phase() == sim.PhaseOver,
	}
}

// restart applies any pending configuration and resets the round. The
// engine keeps its random stream unless the configuration changed.
func (g *Game) restart() {
	if g.applyPending() {
		g.ticks = 0
		_ = g.rebuild(g.runtime.Seed)
		return
	}
	g.engine.Reset()
}

// applyPending swaps in a scheduled configuration. Reports whether it did.
func (g *Game) applyPending() bool {
	if g.pending == nil {
		return false
	}
	g.cfg = *g.pending
	g.pending = nil
	return true
}

func (g *Game) rebuild(seed int64) error {
	engine, err := sim.New(g.cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("flappy: %w", err)
	}
	g.engine = engine
	return nil
}

func (g *Game) setRuntime(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.tick = time.Second / time.Duration(runtime.TickRate)
	g.ticks = 0
}

// Register the variants with the registry
func init() {
	registry.Register("flappy", "Flappy Bird", func(cfg config.FlappyConfig) (registry.Game, error) {
		return New("flappy", "Flappy Bird", cfg)
	})
	registry.Register("flappy-crossing", "Flappy Bird (crossing scoring)", func(cfg config.FlappyConfig) (registry.Game, error) {
		cfg.Scoring = config.ScoringCrossing
		g, err := New("flappy-crossing", "Flappy Bird (crossing scoring)", cfg)
		if err != nil {
			return nil, err
		}
		g.scoring = config.ScoringCrossing
		g.fixed = true
		return g, nil
	})
}
