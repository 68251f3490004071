package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in the terminal",
	Long: `Start playing the given variant in the terminal. Without a variant a
menu lets you pick one, and you return to it after quitting a game.

Controls:
  Space/Up/W  - Flap
  Enter/R     - Restart (after game over)
  Ctrl+S      - Save a screenshot to ~/.flappy/screenshots
  Q/Ctrl+C    - Quit

With --watch, edits to the config file are picked up while playing and
take effect on the next restart.

Examples:
  flappy play
  flappy play flappy
  flappy play flappy-crossing --seed 42
  flappy play --config ./my-flappy.yaml --watch --log-file flappy.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
}

func runPlay(_ *cobra.Command, args []string) error {
	if len(args) == 1 && !registry.Exists(args[0]) {
		return fmt.Errorf("unknown variant %q (run 'flappy list' to see available variants)", args[0])
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, source, err := loadConfig(logger)
	if err != nil {
		return err
	}

	opts := tui.Options{Logger: logger}
	if flagWatch {
		path, err := watchedPath(source)
		if err != nil {
			return err
		}
		w, err := config.NewWatcher(path)
		if err != nil {
			return err
		}
		defer w.Close()
		opts.Watcher = w
		logger.Info("watching config", "path", path)
	}

	rc := terminalConfig()
	if len(args) == 1 {
		return playOnce(args[0], cfg, rc, opts)
	}
	return playMenu(cfg, rc, opts, logger)
}

// terminalConfig sizes the runtime to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func playOnce(id string, cfg config.FlappyConfig, rc core.RuntimeConfig, opts tui.Options) error {
	game, err := registry.Create(id, cfg)
	if err != nil {
		return err
	}
	if err := pinScoring(game); err != nil {
		return err
	}
	if err := tui.Run(game, rc, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// playMenu loops between the variant menu and the chosen game.
func playMenu(cfg config.FlappyConfig, rc core.RuntimeConfig, opts tui.Options, logger *log.Logger) error {
	for {
		result, err := tui.RunMenu(rc)
		if err != nil {
			return err
		}

		// Update config with any size changes
		rc = result.Config
		if result.Quit {
			return nil
		}

		// Each game gets a fresh seed unless one was given
		if flagSeed == 0 {
			rc.Seed = time.Now().UnixNano()
		}

		if err := playOnce(result.GameID, cfg, rc, opts); err != nil {
			logger.Error("game failed", "game", result.GameID, "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}
