package sim

import "github.com/vovakirdan/tui-flappy/internal/config"

// Autopilot decides whether a flap now keeps the flyer on course for the
// next gate's gap. It predicts one step ahead and flaps before the flyer's
// bottom edge would sink into the lower part of the gap.
func Autopilot(st State, cfg config.FlappyConfig) bool {
	if st.Phase != PhasePlaying {
		return false
	}

	f := st.Flyer
	floor := cfg.Screen.Height/2 + cfg.Gates.GapHeight/2
	for _, g := range st.Gates {
		if g.X+cfg.Gates.Width > f.X {
			floor = g.GapY + cfg.Gates.GapHeight
			break
		}
	}
	margin := cfg.Gates.GapHeight / 8

	nextY := f.Y + f.Vel + cfg.Physics.Gravity
	return nextY+f.Size > floor-margin
}
