// Package config provides YAML-based game configuration loading and
// difficulty management for the flappy game.
package config

import "errors"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// FlappyConfig contains all configuration for the game.
// All distances are world pixels and all times are seconds.
type FlappyConfig struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Pipes      PipesConfig      `yaml:"pipes"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the simulated viewport.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// GroundTop returns the y coordinate of the ground surface.
func (w WorldConfig) GroundTop() float64 {
	return w.Height - w.GroundHeight
}

// PhysicsConfig defines the flyer and scroller physics.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // px/s^2, positive is down
	JumpVelocity float64 `yaml:"jump_velocity"`  // px/s, negative is up
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // px/s
	GroundSpeed  float64 `yaml:"ground_speed"`   // px/s at base difficulty
}

// PlayerConfig defines where the flyer spawns and how big it is.
type PlayerConfig struct {
	XRatio float64 `yaml:"x_ratio"` // Fraction of world width
	YRatio float64 `yaml:"y_ratio"` // Fraction of world height
	Radius float64 `yaml:"radius"`
}

// PipesConfig defines obstacle spawning and geometry.
type PipesConfig struct {
	Speed          float64 `yaml:"speed"`            // px/s at base difficulty
	Width          float64 `yaml:"width"`            // px
	Gap            float64 `yaml:"gap"`              // Gap height at base difficulty
	MinGap         float64 `yaml:"min_gap"`          // Floor for difficulty gap reduction
	SpawnInterval  float64 `yaml:"spawn_interval"`   // Seconds between spawns
	MinSpan        float64 `yaml:"min_span"`         // Minimum height of top and bottom pipe
	CenterMinRatio float64 `yaml:"center_min_ratio"` // Gap center lower bound, fraction of ground top
	CenterMaxRatio float64 `yaml:"center_max_ratio"` // Gap center upper bound, fraction of ground top
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over session time.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "time" or "none"
	MaxAt float64 `yaml:"max_at"` // Seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to pipe speed at max difficulty
	GapReduction    float64 `yaml:"gap_reduction"`    // Gap height reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
