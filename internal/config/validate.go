package config

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate checks that cfg describes a playable world.
// It returns a *ValidationError, or nil if the config is usable.
func Validate(cfg FlappyConfig) error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(cfg.Screen.Width > 0, "screen.width must be positive, got %v", cfg.Screen.Width)
	check(cfg.Screen.Height > 0, "screen.height must be positive, got %v", cfg.Screen.Height)

	check(cfg.Flyer.Size > 0, "flyer.size must be positive, got %v", cfg.Flyer.Size)
	check(cfg.Flyer.X >= 0 && cfg.Flyer.X < cfg.Screen.Width,
		"flyer.x must be within [0, %v), got %v", cfg.Screen.Width, cfg.Flyer.X)
	check(cfg.Flyer.StartY >= 0 && cfg.Flyer.StartY <= cfg.MaxFlyerY(),
		"flyer.start_y must be within [0, %v], got %v", cfg.MaxFlyerY(), cfg.Flyer.StartY)

	check(cfg.Physics.Gravity > 0, "physics.gravity must be positive, got %v", cfg.Physics.Gravity)
	check(cfg.Physics.FlapImpulse < 0, "physics.flap_impulse must be negative (upward), got %v", cfg.Physics.FlapImpulse)

	check(cfg.Gates.Width > 0, "gates.width must be positive, got %v", cfg.Gates.Width)
	check(cfg.Gates.GapHeight > 0, "gates.gap_height must be positive, got %v", cfg.Gates.GapHeight)
	check(cfg.Gates.Speed > 0, "gates.speed must be positive, got %v", cfg.Gates.Speed)
	check(cfg.Gates.SpawnInterval > 0, "gates.spawn_interval must be positive, got %v", cfg.Gates.SpawnInterval)
	check(cfg.Gates.GapMinY >= 0, "gates.gap_min_y must not be negative, got %d", cfg.Gates.GapMinY)
	check(cfg.Gates.GapMinY < cfg.Gates.GapMaxY,
		"gates.gap_min_y (%d) must be less than gates.gap_max_y (%d)", cfg.Gates.GapMinY, cfg.Gates.GapMaxY)
	check(float64(cfg.Gates.GapMaxY-1)+cfg.Gates.GapHeight <= cfg.Screen.Height,
		"gates.gap_max_y (%d) leaves the gap below the screen bottom", cfg.Gates.GapMaxY)

	switch cfg.Scoring {
	case ScoringExact, ScoringCrossing:
	default:
		problems = append(problems, fmt.Sprintf("scoring must be %q or %q, got %q", ScoringExact, ScoringCrossing, cfg.Scoring))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Warnings reports settings that are valid but probably not what the author
// intended. It assumes cfg already passed Validate.
func Warnings(cfg FlappyConfig) []string {
	var warnings []string

	if cfg.Scoring == ScoringExact {
		distance := cfg.Screen.Width - cfg.Flyer.X
		if rem := math.Mod(distance, cfg.Gates.Speed); rem != 0 {
			warnings = append(warnings, fmt.Sprintf(
				"exact scoring never fires: gates spawn %v units right of the flyer, not a multiple of speed %v; use scoring: crossing",
				distance, cfg.Gates.Speed))
		}
	}

	if cfg.Gates.GapHeight <= cfg.Flyer.Size {
		warnings = append(warnings, fmt.Sprintf(
			"gates.gap_height (%v) is not larger than flyer.size (%v); no gate can be passed",
			cfg.Gates.GapHeight, cfg.Flyer.Size))
	}

	return warnings
}
