package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var flagDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration that play, window and sim would use, after
the search order and --scoring are applied.

Search order:
  --config <path>
  ~/.flappy/flappy.yaml
  ./configs/flappy.yaml
  built-in defaults

Examples:
  flappy config
  flappy config --config ./my-flappy.yaml
  flappy config --default > flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefault, "default", false, "Print the built-in default file")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagDefault {
		_, err := out.Write(config.DefaultYAML())
		return err
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

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# source: %s\n", source)
	_, err = out.Write(data)
	return err
}

// loadConfig resolves the configuration and applies --scoring.
// It returns the config and where it came from.
func loadConfig(logger *log.Logger) (config.FlappyConfig, string, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, source, err
	}

	if flagScoring != "" {
		mode, err := config.ParseScoringMode(flagScoring)
		if err != nil {
			return cfg, source, err
		}
		cfg.Scoring = mode
	}

	logger.Debug("config loaded", "source", source)
	for _, w := range config.Warnings(cfg) {
		logger.Warn(w, "source", source)
	}
	return cfg, source, nil
}

// pinScoring makes --scoring outlive config reloads on game.
func pinScoring(game registry.Game) error {
	if flagScoring == "" {
		return nil
	}
	mode, err := config.ParseScoringMode(flagScoring)
	if err != nil {
		return err
	}
	if p, ok := game.(registry.ScoringPinner); ok {
		return p.PinScoring(mode)
	}
	return nil
}

// watchedPath returns the file --watch should follow.
func watchedPath(source string) (string, error) {
	if source == config.SourceEmbedded {
		return "", fmt.Errorf("--watch needs a config file; none found (try --config)")
	}
	if _, err := os.Stat(source); err != nil {
		return "", fmt.Errorf("watch: %w", err)
	}
	return source, nil
}
