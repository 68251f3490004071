// Package window runs a game in a desktop window using Ebitengine.
// Drawing works in world units: Layout reports the configured screen
// size and Ebitengine scales it to the window.
package window

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// World is the view of a game the window host needs.
type World interface {
	registry.Game
	Snapshot() sim.State
	Config() config.FlappyConfig
	Walls(g sim.Gate) (top, bottom core.RectF)
}

// ShapeKind tells the painter which palette entry to use.
type ShapeKind int

const (
	ShapeWall ShapeKind = iota
	ShapeFlyer
)

// Shape is one filled rectangle of a frame.
type Shape struct {
	Kind ShapeKind
	Rect core.RectF
}

// Shapes lists the rectangles to paint for st, walls first.
func Shapes(w World, st sim.State) []Shape {
	shapes := make([]Shape, 0, len(st.Gates)*2+1)
	for _, g := range st.Gates {
		top, bottom := w.Walls(g)
		if !top.Empty() {
			shapes = append(shapes, Shape{Kind: ShapeWall, Rect: top})
		}
		if !bottom.Empty() {
			shapes = append(shapes, Shape{Kind: ShapeWall, Rect: bottom})
		}
	}
	return append(shapes, Shape{Kind: ShapeFlyer, Rect: st.Flyer.Rect()})
}

// Keys is the set of keys pressed down this frame.
type Keys struct {
	Flap    bool
	Restart bool
}

// Frame converts key edges into an input frame. Flap is dropped once the
// round is over and restart while it is still running.
func Frame(k Keys, over bool) core.InputFrame {
	in := core.NewInputFrame()
	if k.Flap && !over {
		in.Set(core.ActionJump)
	}
	if k.Restart && over {
		in.Set(core.ActionRestart)
	}
	return in
}
