package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// Render scales the world onto the screen and draws walls, the flyer, the
// score label and, once the round is over, the restart prompt.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	st := g.engine.State()
	sx := float64(dst.Width()) / g.cfg.Screen.Width
	sy := float64(dst.Height()) / g.cfg.Screen.Height

	for _, gate := range st.Gates {
		g.drawGate(dst, gate, sx, sy)
	}

	g.drawFlyer(dst, st.Flyer, sx, sy)

	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", st.Score), core.ColorWhite)

	if st.Over() {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  %s", st.Score, RestartPrompt))
	}
}

// drawGate renders both walls of a gate with caps facing the gap.
func (g *Game) drawGate(dst *core.Screen, gate sim.Gate, sx, sy float64) {
	top, bottom := g.engine.Walls(gate)

	if !top.Empty() {
		r := top.Cells(sx, sy)
		dst.DrawRect(r, PipeChar, core.ColorGreen)
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, r.Bottom()-1, PipeCapTop, core.ColorBrightGreen)
		}
	}

	if !bottom.Empty() {
		r := bottom.Cells(sx, sy)
		dst.DrawRect(r, PipeChar, core.ColorGreen)
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, r.Y, PipeCapBottom, core.ColorBrightGreen)
		}
	}
}

// drawFlyer renders the flyer with its beak on the top-right cell.
func (g *Game) drawFlyer(dst *core.Screen, f sim.Flyer, sx, sy float64) {
	r := f.Rect().Cells(sx, sy)
	dst.DrawRect(r, FlyerChar, core.ColorYellow)
	dst.SetColored(r.Right()-1, r.Y, FlyerBeak, core.ColorBrightYellow)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	// Keep the box's top-left corner on screen when it does not fit
	boxX := core.Clamp((w-boxW)/2, 0, core.Max(w-boxW, 0))
	boxY := core.Clamp((h-boxH)/2, 0, core.Max(h-boxH, 0))

	// Draw box
	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorRed)

	// Draw text
	dst.DrawTextCentered(boxY+1, title, core.ColorRed)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorWhite)
}
