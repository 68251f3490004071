// flappy is a side-scrolling arcade game for the terminal and the desktop.
//
// Usage:
//
//	flappy list               - List available variants
//	flappy play [variant]     - Play in the terminal (menu when no variant)
//	flappy window [variant]   - Play in a desktop window
//	flappy sim                - Run a headless round and print a summary
//	flappy config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Load configuration from a YAML file
//	--scoring <mode>      - Override the scoring mode (exact, crossing)
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagScoring  string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - steer through the gates",
	Long: `Flappy is a side-scrolling arcade game. Flap to stay airborne and
pass through the gaps between the walls.

Available commands:
  list     - Show all available variants
  play     - Play in the terminal
  window   - Play in a desktop window
  sim      - Run a headless round
  config   - Print the effective configuration

Examples:
  flappy play
  flappy play flappy-crossing --watch
  flappy window --scale 1.5
  flappy sim --seed 42 --ticks 3600
  flappy config --default > flappy.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagScoring, "scoring", "", "Scoring mode override: exact, crossing")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}
