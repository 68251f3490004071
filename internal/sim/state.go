package sim

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Phase is the coarse game state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Flyer is the player-controlled entity. X and Size never change after
// construction; Y and Vel are advanced by the physics step and by Flap.
type Flyer struct {
	X    float64 // Fixed horizontal position (left edge)
	Y    float64 // Vertical position (top edge), grows downward
	Vel  float64 // Vertical velocity per frame, positive = falling
	Size float64 // Side of the square hitbox
}

// Rect returns the flyer's hitbox.
func (f Flyer) Rect() core.RectF {
	return core.NewRectF(f.X, f.Y, f.Size, f.Size)
}

// Gate is one obstacle: a wall from the top of the screen down to GapY and
// a wall from GapY+gapHeight down to the bottom. X is the leading (left) edge.
type Gate struct {
	X    float64
	GapY float64
}

// TopWall returns the upper wall rectangle.
func (g Gate) TopWall(width float64) core.RectF {
	return core.NewRectF(g.X, 0, width, g.GapY)
}

// BottomWall returns the lower wall rectangle.
func (g Gate) BottomWall(width, gapHeight, screenH float64) core.RectF {
	top := g.GapY + gapHeight
	return core.NewRectF(g.X, top, width, screenH-top)
}

// overlapsColumn reports whether the gate spans any part of [x, x+size).
func (g Gate) overlapsColumn(x, size, width float64) bool {
	return g.X < x+size && g.X+width > x
}

// blocks reports whether a flyer spanning [y, y+size) vertically is not
// fully inside the gap.
func (g Gate) blocks(y, size, gapHeight float64) bool {
	return y < g.GapY || y+size > g.GapY+gapHeight
}

// State is the full mutable data model of one round.
type State struct {
	Flyer Flyer
	Gates []Gate // Spawn order, which is also left-to-right order
	Score int
	Phase Phase
}

// Snapshot returns a deep copy that shares no memory with s.
func (s State) Snapshot() State {
	out := s
	out.Gates = make([]Gate, len(s.Gates))
	copy(out.Gates, s.Gates)
	return out
}

// Over reports whether the round has ended.
func (s State) Over() bool {
	return s.Phase == PhaseOver
}
