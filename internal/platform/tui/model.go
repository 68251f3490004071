package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// ConfigReloadMsg carries a config file reload into the update loop.
type ConfigReloadMsg config.Reload

// Options configures a terminal session.
type Options struct {
	// Logger receives session events. A discarding logger is used when nil.
	Logger *log.Logger
	// Watcher, when set, feeds config reloads to the game.
	Watcher *config.Watcher
	// ScreenshotDir overrides ~/.flappy/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	keys       *KeyMapper
	help       help.Model
	logger     *log.Logger
	watcher    *config.Watcher
	shotDir    string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	status     string // Shown next to the help line
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			shotDir = filepath.Join(home, ".flappy", "screenshots")
		} else {
			shotDir = "screenshots"
		}
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		keys:       NewKeyMapper(),
		help:       help.New(),
		logger:     logger,
		watcher:    opts.Watcher,
		shotDir:    shotDir,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("session started", "game", m.game.ID(), "seed", m.config.Seed, "fps", m.config.TickRate)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.watcher != nil {
		cmds = append(cmds, waitForReload(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ConfigReloadMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
// Flap is only forwarded while playing and restart only once the round is over.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.logger.Info("session ended", "game", m.game.ID(), "score", m.gameState.Score)
		return m, tea.Quit
	}

	switch action {
	case core.ActionJump:
		if !m.gameState.GameOver {
			m.inputFrame.Set(core.ActionJump)
		}
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	}

	return m, nil
}

// handleResize processes window resize events.
// The world keeps its own coordinates, so the round continues at the new scale.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	restarting := m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case restarting:
		m.status = ""
		m.logger.Info("round restarted", "game", m.game.ID())
	case result.Ended:
		m.logger.Info("round over", "game", m.game.ID(), "score", m.gameState.Score)
	case result.Scored:
		m.logger.Debug("gate passed", "score", m.gameState.Score)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// handleReload hands a reloaded config to the game and keeps listening.
func (m Model) handleReload(msg ConfigReloadMsg) (tea.Model, tea.Cmd) {
	next := waitForReload(m.watcher)

	if msg.Err != nil {
		m.logger.Warn("config reload failed", "path", msg.Path, "error", msg.Err)
		m.status = "config error, see log"
		return m, next
	}

	rc, ok := m.game.(registry.Reconfigurable)
	if !ok {
		m.logger.Warn("game does not support reload", "game", m.game.ID())
		return m, next
	}
	if err := rc.Reconfigure(msg.Config); err != nil {
		m.logger.Warn("config rejected", "path", msg.Path, "error", err)
		m.status = "config rejected, see log"
		return m, next
	}

	for _, w := range config.Warnings(msg.Config) {
		m.logger.Warn(w, "path", msg.Path)
	}
	m.logger.Info("config reloaded", "path", msg.Path)
	m.status = "config reloaded, applies on restart"
	return m, next
}

// waitForReload blocks on the watcher's channel and turns the next reload
// into a message. A closed channel ends the subscription.
func waitForReload(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-w.Reloads
		if !ok {
			return nil
		}
		return ConfigReloadMsg(r)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys.Keys())
	if m.status != "" {
		footer += "  " + m.status
	}
	return RenderScreen(m.screen) + "\n" + colorStyles[core.ColorGray].Render(footer)
}

// playfieldHeight leaves one row for the help line.
func playfieldHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Run starts the Bubble Tea program for game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
