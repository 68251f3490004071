package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  100,
		ScreenH:  50,
		TickRate: 60,
		Seed:     seed,
	}
}

// corridorConfig pins every gap to [200, 320] and nearly disables gravity,
// so the flyer glides through gates without input.
func corridorConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.Gravity = 0.001
	cfg.Gates.GapMinY = 200
	cfg.Gates.GapMaxY = 201
	return cfg
}

func newTestGame(t *testing.T, cfg config.FlappyConfig, seed int64) *Game {
	t.Helper()
	g, err := New("flappy", "Flappy Bird", cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.Reset(testRuntime(seed))
	return g
}

func stepN(g *Game, n int, in core.InputFrame) core.StepResult {
	var res core.StepResult
	for i := 0; i < n; i++ {
		res = g.Step(in)
	}
	return res
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must produce identical results
	inputSequence := make([]core.InputFrame, 600)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i%15 == 0 {
			inputSequence[i].Set(core.ActionJump)
		}
	}

	run := func() (core.GameState, float64) {
		g := newTestGame(t, config.DefaultFlappyConfig(), 12345)
		var state core.GameState
		for _, in := range inputSequence {
			state = g.Step(in).State
		}
		return state, g.Snapshot().Flyer.Y
	}

	state1, y1 := run()
	state2, y2 := run()
	if state1 != state2 || y1 != y2 {
		t.Errorf("Determinism failed: %+v/%v vs %+v/%v", state1, y1, state2, y2)
	}
}

func TestGameJumpPhysics(t *testing.T) {
	g := newTestGame(t, config.DefaultFlappyConfig(), 1)

	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	g.Step(jump)

	st := g.Snapshot()
	if st.Flyer.Vel != -7.5 {
		t.Errorf("Vel = %v after jump, expected -7.5", st.Flyer.Vel)
	}
	if st.Flyer.Y != 242.5 {
		t.Errorf("Y = %v after jump, expected 242.5", st.Flyer.Y)
	}
}

func TestGameGravity(t *testing.T) {
	g := newTestGame(t, config.DefaultFlappyConfig(), 1)

	g.Step(core.NewInputFrame())

	st := g.Snapshot()
	if st.Flyer.Y != 250.5 || st.Flyer.Vel != 0.5 {
		t.Errorf("flyer = %+v, expected Y 250.5 and Vel 0.5", st.Flyer)
	}
}

func TestGameOverReportedOnce(t *testing.T) {
	g := newTestGame(t, config.DefaultFlappyConfig(), 1)

	ended := 0
	for i := 0; i < 200; i++ {
		if g.Step(core.NewInputFrame()).Ended {
			ended++
		}
	}

	if !g.State().GameOver {
		t.Fatal("Game should be over when the flyer falls to the floor")
	}
	if ended != 1 {
		t.Errorf("Ended reported %d times, expected once", ended)
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(t, config.DefaultFlappyConfig(), 1)
	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)

	// Restart is ignored while playing
	stepN(g, 5, core.NewInputFrame())
	g.Step(restart)
	if y := g.Snapshot().Flyer.Y; y == 250 {
		t.Error("Restart should be ignored while playing")
	}

	stepN(g, 200, core.NewInputFrame())
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}

	res := g.Step(restart)
	if res.State.GameOver || res.State.Score != 0 {
		t.Errorf("after restart state = %+v", res.State)
	}
	st := g.Snapshot()
	if st.Flyer.Y != 250 || st.Flyer.Vel != 0 || len(st.Gates) != 1 {
		t.Errorf("after restart snapshot = %+v", st)
	}
}

func TestGameJumpIgnoredWhenOver(t *testing.T) {
	g := newTestGame(t, config.DefaultFlappyConfig(), 1)
	stepN(g, 200, core.NewInputFrame())

	before := g.Snapshot()
	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	stepN(g, 10, jump)

	if g.Snapshot().Flyer != before.Flyer {
		t.Error("jumping after game over should not move the flyer")
	}
}

func TestGameScoresThroughCorridor(t *testing.T) {
	g := newTestGame(t, corridorConfig(), 7)

	scoredAt := 0
	for i := 1; i <= 150; i++ {
		if g.Step(core.NewInputFrame()).Scored && scoredAt == 0 {
			scoredAt = i
		}
	}

	if g.State().GameOver {
		t.Fatal("flyer inside the corridor should survive")
	}
	if scoredAt != 100 {
		t.Errorf("first score at tick %d, expected 100", scoredAt)
	}
	if g.State().Score != 1 {
		t.Errorf("score = %d, expected 1", g.State().Score)
	}
}

func TestGameReconfigureAppliesOnRestart(t *testing.T) {
	g := newTestGame(t, config.DefaultFlappyConfig(), 1)

	next := config.DefaultFlappyConfig()
	next.Physics.Gravity = 0.25
	if err := g.Reconfigure(next); err != nil {
		t.Fatalf("Reconfigure() failed: %v", err)
	}
	if g.Config().Physics.Gravity != 0.5 {
		t.Error("new config should not apply mid-round")
	}

	stepN(g, 200, core.NewInputFrame())
	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	if g.Config().Physics.Gravity != 0.25 {
		t.Errorf("Gravity = %v after restart, expected 0.25", g.Config().Physics.Gravity)
	}
	g.Step(core.NewInputFrame())
	if v := g.Snapshot().Flyer.Vel; v != 0.25 {
		t.Errorf("Vel = %v after one tick, expected 0.25", v)
	}

	bad := config.DefaultFlappyConfig()
	bad.Gates.GapMaxY = bad.Gates.GapMinY
	if err := g.Reconfigure(bad); err == nil {
		t.Error("Reconfigure() should reject invalid configs")
	}
}

func TestGameRender(t *testing.T) {
	cfg := testRuntime(1)
	g := newTestGame(t, config.DefaultFlappyConfig(), 1)

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)

	// World 500x500 on 100x50 cells: flyer at (200, 250) size 20 covers
	// cells x 40..43, y 25..26
	if screen.Get(40, 25) != FlyerChar {
		t.Errorf("expected flyer body at (40, 25), got %q", screen.Get(40, 25))
	}
	if screen.Get(43, 25) != FlyerBeak {
		t.Errorf("expected flyer beak at (43, 25), got %q", screen.Get(43, 25))
	}
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("score label missing from top row: %q", screen.Row(0))
	}
	if strings.Contains(screen.String(), RestartPrompt) {
		t.Error("restart prompt should only show when the round is over")
	}
}

func TestGameRenderGate(t *testing.T) {
	g := newTestGame(t, corridorConfig(), 1)
	stepN(g, 50, core.NewInputFrame()) // Gate leading edge at x = 350

	screen := core.NewScreen(100, 50)
	g.Render(screen)

	// Gate covers cells x 70..81; gap [200, 320] covers rows 20..31
	tests := []struct {
		name     string
		x, y     int
		expected rune
	}{
		{"top wall", 75, 5, PipeChar},
		{"top cap", 75, 19, PipeCapTop},
		{"gap", 75, 25, ' '},
		{"bottom cap", 75, 32, PipeCapBottom},
		{"bottom wall", 75, 45, PipeChar},
		{"right of gate", 83, 5, ' '},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := screen.Get(tc.x, tc.y); got != tc.expected {
				t.Errorf("Get(%d, %d) = %q, expected %q", tc.x, tc.y, got, tc.expected)
			}
		})
	}

	if screen.GetCell(75, 5).Color != core.ColorGreen {
		t.Error("walls should be green")
	}
}

func TestGameRenderGameOver(t *testing.T) {
	g := newTestGame(t, config.DefaultFlappyConfig(), 1)
	stepN(g, 200, core.NewInputFrame())

	screen := core.NewScreen(100, 50)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "GAME OVER") {
		t.Error("game over box missing")
	}
	if !strings.Contains(out, RestartPrompt) {
		t.Error("restart prompt missing")
	}
}

func TestGameOverBoxFitsNarrowScreen(t *testing.T) {
	g := newTestGame(t, config.DefaultFlappyConfig(), 1)
	stepN(g, 200, core.NewInputFrame())

	// The box is wider than the screen, so it is pinned to the left edge
	screen := core.NewScreen(20, 50)
	g.Render(screen)

	if got := screen.Get(0, 22); got != '┌' {
		t.Errorf("Get(0, 22) = %q, expected box corner", got)
	}
	if !strings.Contains(screen.Row(23), "GAME") {
		t.Errorf("title row = %q, expected the game over title", screen.Row(23))
	}
}

func TestRegisteredVariants(t *testing.T) {
	tests := []struct {
		id      string
		scoring config.ScoringMode
	}{
		{"flappy", config.ScoringExact},
		{"flappy-crossing", config.ScoringCrossing},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			rg, err := registry.Create(tc.id, config.DefaultFlappyConfig())
			if err != nil {
				t.Fatalf("registry.Create() failed: %v", err)
			}
			g, ok := rg.(*Game)
			if !ok {
				t.Fatalf("registry returned %T", rg)
			}
			if g.ID() != tc.id {
				t.Errorf("ID() = %q, expected %q", g.ID(), tc.id)
			}
			if g.Config().Scoring != tc.scoring {
				t.Errorf("Scoring = %q, expected %q", g.Config().Scoring, tc.scoring)
			}
			if _, ok := rg.(registry.Reconfigurable); !ok {
				t.Error("game should accept live reconfiguration")
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Gates.SpawnInterval = -1
	if _, err := New("flappy", "Flappy Bird", cfg); err == nil {
		t.Error("New() should reject invalid configs")
	}
}

func TestReloadKeepsVariantScoring(t *testing.T) {
	rg, err := registry.Create("flappy-crossing", config.DefaultFlappyConfig())
	if err != nil {
		t.Fatalf("registry.Create() failed: %v", err)
	}
	g := rg.(*Game)
	g.Reset(testRuntime(1))

	reloaded := config.DefaultFlappyConfig()
	reloaded.Gates.Speed = 4
	if err := g.Reconfigure(reloaded); err != nil {
		t.Fatalf("Reconfigure() failed: %v", err)
	}
	g.Reset(testRuntime(1))

	if g.Config().Scoring != config.ScoringCrossing {
		t.Errorf("Scoring = %q after reload, expected crossing", g.Config().Scoring)
	}
	if g.Config().Gates.Speed != 4 {
		t.Errorf("Gates.Speed = %v, expected the reloaded value 4", g.Config().Gates.Speed)
	}

	// The variant's own mode wins over a session pin
	if err := g.PinScoring(config.ScoringExact); err != nil {
		t.Fatalf("PinScoring() failed: %v", err)
	}
	if g.Config().Scoring != config.ScoringCrossing {
		t.Errorf("Scoring = %q after pin, expected crossing", g.Config().Scoring)
	}
}

func TestPinScoringSurvivesReload(t *testing.T) {
	g := newTestGame(t, config.DefaultFlappyConfig(), 1)

	if err := g.PinScoring(config.ScoringCrossing); err != nil {
		t.Fatalf("PinScoring() failed: %v", err)
	}
	if g.Config().Scoring != config.ScoringCrossing {
		t.Fatalf("Scoring = %q, expected crossing right after pin", g.Config().Scoring)
	}

	if err := g.Reconfigure(config.DefaultFlappyConfig()); err != nil {
		t.Fatalf("Reconfigure() failed: %v", err)
	}
	stepN(g, 200, core.NewInputFrame())
	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	if g.Config().Scoring != config.ScoringCrossing {
		t.Errorf("Scoring = %q after reload and restart, expected crossing", g.Config().Scoring)
	}

	if err := g.PinScoring("sideways"); err == nil {
		t.Error("PinScoring() should reject unknown modes")
	}
	if _, ok := any(g).(registry.ScoringPinner); !ok {
		t.Error("game should support pinning its scoring mode")
	}
}
