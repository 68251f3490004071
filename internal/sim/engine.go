// Package sim implements the flappy simulation core: per-frame physics,
// gate spawning and retirement, scoring, collision and the Playing/Over
// state machine.
//
// Integration is fixed-step semi-implicit Euler: every Advance adds gravity
// to velocity, then velocity to position. It accumulates per call, so motion
// depends on how often the host calls Advance; hosts should call it once per
// frame at a fixed rate with dt = 1.
//
// The engine is not safe for concurrent use. Hosts that receive input on
// another goroutine must funnel it into the goroutine that calls Advance.
package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// RandSource supplies the gap positions of new gates. *rand.Rand satisfies it.
type RandSource interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// Engine owns the simulation state and advances it.
type Engine struct {
	cfg   config.FlappyConfig
	rng   RandSource
	state State

	clock     time.Duration // Latest timestamp seen by Advance
	lastSpawn time.Duration // Timestamp of the latest timed spawn
	spawned   int           // Gates spawned since the last reset
}

// New validates cfg and returns an engine in its initial state: flyer at
// the start height, one gate at the right edge, Playing.
func New(cfg config.FlappyConfig, rng RandSource) (*Engine, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	if rng == nil {
		return nil, errors.New("sim: nil random source")
	}

	e := &Engine{
		cfg: cfg,
		rng: rng,
	}
	e.Reset()
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.FlappyConfig {
	return e.cfg
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state.Snapshot()
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.state.Phase
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.state.Score
}

// GatesSpawned returns how many gates were spawned since the last reset,
// including the initial one.
func (e *Engine) GatesSpawned() int {
	return e.spawned
}

// Walls returns the two wall rectangles of g using the engine's geometry.
func (e *Engine) Walls(g Gate) (top, bottom core.RectF) {
	top = g.TopWall(e.cfg.Gates.Width)
	bottom = g.BottomWall(e.cfg.Gates.Width, e.cfg.Gates.GapHeight, e.cfg.Screen.Height)
	return top, bottom
}

// Flap sets the flyer's velocity to the flap impulse. Prior velocity is
// discarded. No-op once the round is over.
func (e *Engine) Flap() {
	if e.state.Phase != PhasePlaying {
		return
	}
	e.state.Flyer.Vel = e.cfg.Physics.FlapImpulse
}

// Reset restores the initial state and spawns one gate. It may be called in
// either phase. The spawn timer restarts from the latest timestamp seen, so
// the second gate comes a full interval later, never on the first frame.
func (e *Engine) Reset() {
	e.state = State{
		Flyer: Flyer{
			X:    e.cfg.Flyer.X,
			Y:    e.cfg.Flyer.StartY,
			Size: e.cfg.Flyer.Size,
		},
		Gates: make([]Gate, 0, 8),
		Phase: PhasePlaying,
	}
	e.spawned = 0
	e.lastSpawn = e.clock
	e.spawnGate()
}

// Advance runs one simulation step. dt scales gravity, velocity and gate
// speed (1 = one reference frame). now is a monotonically increasing
// timestamp used only for spawn timing. Does nothing once the round is over
// or when dt is not positive.
func (e *Engine) Advance(dt float64, now time.Duration) {
	if now > e.clock {
		e.clock = now
	}
	if e.state.Phase != PhasePlaying || dt <= 0 {
		return
	}

	// Velocity before position
	f := &e.state.Flyer
	f.Vel += e.cfg.Physics.Gravity * dt
	f.Y += f.Vel * dt

	if f.Y > e.cfg.MaxFlyerY() || f.Y < 0 {
		e.state.Phase = PhaseOver
		return
	}

	gates := e.state.Gates
	step := e.cfg.Gates.Speed * dt
	for i := range gates {
		prevX := gates[i].X
		gates[i].X -= step
		if e.passed(prevX, gates[i].X) {
			e.state.Score++
		}
	}

	for _, g := range gates {
		if g.overlapsColumn(f.X, f.Size, e.cfg.Gates.Width) && g.blocks(f.Y, f.Size, e.cfg.Gates.GapHeight) {
			e.state.Phase = PhaseOver
		}
	}

	e.retireGates()

	if now-e.lastSpawn > e.cfg.Gates.SpawnInterval {
		e.spawnGate()
		e.lastSpawn = now
	}
}

// passed reports whether a gate whose leading edge moved from prevX to x
// scores this step.
func (e *Engine) passed(prevX, x float64) bool {
	flyerX := e.state.Flyer.X
	if e.cfg.Scoring == config.ScoringCrossing {
		return prevX > flyerX && x <= flyerX
	}
	// Exact match only fires when the spawn x and flyer x are a whole
	// number of steps apart; config.Warnings flags configs where it cannot.
	return x == flyerX
}

// retireGates drops gates that are fully past the left edge, keeping order.
func (e *Engine) retireGates() {
	limit := -e.cfg.Gates.Width
	kept := e.state.Gates[:0]
	for _, g := range e.state.Gates {
		if g.X >= limit {
			kept = append(kept, g)
		}
	}
	e.state.Gates = kept
}

// spawnGate appends a gate at the right edge with a uniform gap position in
// [GapMinY, GapMaxY).
func (e *Engine) spawnGate() {
	span := e.cfg.Gates.GapMaxY - e.cfg.Gates.GapMinY
	gapY := e.cfg.Gates.GapMinY + e.rng.Intn(span)
	e.state.Gates = append(e.state.Gates, Gate{
		X:    e.cfg.Screen.Width,
		GapY: float64(gapY),
	})
	e.spawned++
}
