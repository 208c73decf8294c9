package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default game configuration.
// It mirrors defaults/flappy.yaml and is used if the embedded file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:        432,
			Height:       768,
			GroundHeight: 100,
		},
		Physics: PhysicsConfig{
			Gravity:      1800,
			JumpVelocity: -550,
			MaxFallSpeed: 1100,
			GroundSpeed:  180,
		},
		Player: PlayerConfig{
			XRatio: 0.25,
			YRatio: 0.4,
			Radius: 20,
		},
		Pipes: PipesConfig{
			Speed:          180,
			Width:          80,
			Gap:            220,
			MinGap:         140,
			SpawnInterval:  1.6,
			MinSpan:        40,
			CenterMinRatio: 0.15,
			CenterMaxRatio: 0.85,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 120, // two minutes to max difficulty
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.6,
				GapReduction:    60,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
