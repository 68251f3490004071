package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/platform/window"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var (
	flagScale       float64
	flagWindowWatch bool
)

var windowCmd = &cobra.Command{
	Use:   "window [variant]",
	Short: "Play in a desktop window",
	Long: `Opens a window and plays the given variant (default "flappy").

Controls:
  Space/Up/W  - Flap
  Enter/R     - Restart (after game over)
  Esc/Q       - Quit

Examples:
  flappy window
  flappy window flappy-crossing --scale 1.5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size relative to the world")
	windowCmd.Flags().BoolVar(&flagWindowWatch, "watch", false, "Reload the config file when it changes")
}

func runWindow(_ *cobra.Command, args []string) error {
	id := "flappy"
	if len(args) == 1 {
		id = args[0]
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, source, err := loadConfig(logger)
	if err != nil {
		return err
	}

	game, err := registry.Create(id, cfg)
	if err != nil {
		return err
	}
	if err := pinScoring(game); err != nil {
		return err
	}
	world, ok := game.(window.World)
	if !ok {
		return fmt.Errorf("variant %q cannot run in a window", id)
	}

	opts := window.Options{Logger: logger, Scale: flagScale, Seed: flagSeed, TPS: flagFPS}
	if flagWindowWatch {
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
	}

	return window.Run(world, opts)
}
