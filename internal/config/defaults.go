package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Screen: ScreenConfig{
			Width:  500,
			Height: 500,
		},
		Flyer: FlyerConfig{
			X:      200,
			StartY: 250,
			Size:   20,
		},
		Physics: PhysicsConfig{
			Gravity:     0.5,
			FlapImpulse: -8,
		},
		Gates: GateConfig{
			Width:         60,
			GapHeight:     120,
			Speed:         3,
			SpawnInterval: 2 * time.Second,
			GapMinY:       100,
			GapMaxY:       350,
		},
		Scoring: ScoringExact,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
