package window

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var (
	skyColor   = color.RGBA{R: 0x4e, G: 0xc0, B: 0xca, A: 0xff}
	wallColor  = color.RGBA{R: 0x5e, G: 0xa8, B: 0x2c, A: 0xff}
	flyerColor = color.RGBA{R: 0xf7, G: 0xd3, B: 0x08, A: 0xff}
)

const restartPrompt = "Press Enter to restart"

// Options configures a window session.
type Options struct {
	Logger  *log.Logger
	Watcher *config.Watcher
	Scale   float64 // Window size relative to the world; 1 when zero
	Seed    int64   // Time-based when zero
	TPS     int     // Ticks per second; ebiten.DefaultTPS when zero
}

// Game adapts a World to ebiten.Game.
type Game struct {
	world   World
	cfg     config.FlappyConfig
	logger  *log.Logger
	watcher *config.Watcher
	state   core.GameState
}

// NewGame wraps world for Ebitengine.
func NewGame(world World, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		world:   world,
		cfg:     world.Config(),
		logger:  logger,
		watcher: opts.Watcher,
		state:   world.State(),
	}
}

// Update polls input, drains config reloads and advances one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.logger.Info("session ended", "game", g.world.ID(), "score", g.state.Score)
		return ebiten.Termination
	}

	g.pollReload()

	keys := Keys{
		Flap: inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
			inpututil.IsKeyJustPressed(ebiten.KeyW),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
			inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
	restarting := keys.Restart && g.state.GameOver

	result := g.world.Step(Frame(keys, g.state.GameOver))
	g.state = result.State

	switch {
	case restarting:
		g.cfg = g.world.Config()
		g.logger.Info("round restarted", "game", g.world.ID())
	case result.Ended:
		g.logger.Info("round over", "game", g.world.ID(), "score", g.state.Score)
	case result.Scored:
		g.logger.Debug("gate passed", "score", g.state.Score)
	}
	return nil
}

// pollReload hands at most one pending reload to the world without blocking.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}

	select {
	case r, ok := <-g.watcher.Reloads:
		if !ok {
			g.watcher = nil
			return
		}
		if r.Err != nil {
			g.logger.Warn("config reload failed", "path", r.Path, "error", r.Err)
			return
		}
		rc, ok := g.world.(registry.Reconfigurable)
		if !ok {
			g.logger.Warn("game does not support reload", "game", g.world.ID())
			return
		}
		if err := rc.Reconfigure(r.Config); err != nil {
			g.logger.Warn("config rejected", "path", r.Path, "error", err)
			return
		}
		g.logger.Info("config reloaded", "path", r.Path)
	default:
	}
}

// Draw paints the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)

	st := g.world.Snapshot()
	for _, s := range Shapes(g.world, st) {
		clr := wallColor
		if s.Kind == ShapeFlyer {
			clr = flyerColor
		}
		vector.FillRect(screen, float32(s.Rect.X), float32(s.Rect.Y), float32(s.Rect.W), float32(s.Rect.H), clr, false)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", st.Score), 8, 8)
	if st.Over() {
		cx := int(g.cfg.Screen.Width)/2 - 70
		cy := int(g.cfg.Screen.Height) / 2
		ebitenutil.DebugPrintAt(screen, "GAME OVER", cx+40, cy-16)
		ebitenutil.DebugPrintAt(screen, restartPrompt, cx, cy)
	}
}

// Layout keeps the logical screen at the configured world size.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.cfg.Screen.Width), int(g.cfg.Screen.Height)
}

// Run opens a window and plays world until it is closed.
func Run(world World, opts Options) error {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}

	world.Reset(core.RuntimeConfig{
		ScreenW:  int(world.Config().Screen.Width),
		ScreenH:  int(world.Config().Screen.Height),
		TickRate: opts.TPS,
		Seed:     opts.Seed,
	})

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	cfg := world.Config()
	ebiten.SetWindowSize(int(cfg.Screen.Width*scale), int(cfg.Screen.Height*scale))
	ebiten.SetWindowTitle(world.Title())
	ebiten.SetTPS(opts.TPS)

	game := NewGame(world, opts)
	game.logger.Info("window opened", "game", world.ID(), "seed", opts.Seed)
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
