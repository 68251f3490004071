// Package config provides YAML-based configuration loading and validation
// for the flappy simulation.
package config

import (
	"fmt"
	"time"
)

// ScoringMode selects how a gate passing the flyer is detected.
type ScoringMode string

const (
	// ScoringExact scores when a gate's leading edge lands exactly on the
	// flyer's x. It only fires when the spawn-to-flyer distance is a whole
	// multiple of the gate speed.
	ScoringExact ScoringMode = "exact"
	// ScoringCrossing scores on the tick the leading edge moves from right
	// of the flyer's x to on or left of it.
	ScoringCrossing ScoringMode = "crossing"
)

// ParseScoringMode converts a string to a ScoringMode.
func ParseScoringMode(s string) (ScoringMode, error) {
	switch ScoringMode(s) {
	case ScoringExact, ScoringCrossing:
		return ScoringMode(s), nil
	default:
		return "", fmt.Errorf("unknown scoring mode %q (want %q or %q)", s, ScoringExact, ScoringCrossing)
	}
}

// FlappyConfig contains all configuration for the simulation.
// Values are fixed for the lifetime of an engine.
type FlappyConfig struct {
	Screen  ScreenConfig  `yaml:"screen"`
	Flyer   FlyerConfig   `yaml:"flyer"`
	Physics PhysicsConfig `yaml:"physics"`
	Gates   GateConfig    `yaml:"gates"`
	Scoring ScoringMode   `yaml:"scoring"`
}

// ScreenConfig defines the world dimensions.
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlyerConfig defines the flyer's fixed column, start height and hitbox.
type FlyerConfig struct {
	X      float64 `yaml:"x"`
	StartY float64 `yaml:"start_y"`
	Size   float64 `yaml:"size"`
}

// PhysicsConfig defines per-frame physics parameters.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`      // Added to velocity every frame
	FlapImpulse float64 `yaml:"flap_impulse"` // Velocity after a flap (negative = up)
}

// GateConfig defines gate geometry, movement and spawning.
type GateConfig struct {
	Width         float64       `yaml:"width"`
	GapHeight     float64       `yaml:"gap_height"`
	Speed         float64       `yaml:"speed"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	GapMinY       int           `yaml:"gap_min_y"` // Inclusive
	GapMaxY       int           `yaml:"gap_max_y"` // Exclusive
}

// MaxFlyerY is the lowest y the flyer may reach before the round ends.
func (c FlappyConfig) MaxFlyerY() float64 {
	return c.Screen.Height - c.Flyer.Size
}
