package config

import "math"

// DifficultyManager maps elapsed session time to pipe speed and gap height.
// All methods are pure functions of their arguments.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) after elapsed seconds of play.
// It never decreases as elapsed grows.
func (d *DifficultyManager) Level(elapsed float64) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "time" {
		return d.initialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	progress := clampF(elapsed/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// PipeSpeed returns the pipe speed for the given elapsed time.
// Speed grows from base to base * (1 + speedMultiplier).
func (d *DifficultyManager) PipeSpeed(baseSpeed, elapsed float64) float64 {
	mult := math.Max(0, d.cfg.Scaling.SpeedMultiplier)
	return baseSpeed * (1.0 + d.Level(elapsed)*mult)
}

// GapHeight returns the gap height for the given elapsed time.
// The gap shrinks from baseGap by up to gapReduction, never below minGap.
func (d *DifficultyManager) GapHeight(baseGap, minGap, elapsed float64) float64 {
	reduction := d.Level(elapsed) * math.Max(0, d.cfg.Scaling.GapReduction)
	return math.Max(minGap, baseGap-reduction)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
