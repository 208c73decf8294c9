package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source describes where a loaded config came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// LoadFlappy loads the game configuration.
// Search order: customPath -> ~/.arcade/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default.
// Candidate files that fail to parse or validate are skipped, except customPath which is an error.
func LoadFlappy(customPath string) (FlappyConfig, Source, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, SourceCustom, err
		}
		return cfg, SourceCustom, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, SourceUser, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "flappy.yaml")); err == nil {
		return cfg, SourceLocal, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// loadFile reads, parses and validates a config file.
func loadFile(path string) (FlappyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FlappyConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Keys missing from data keep their default values.
func Parse(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func Marshal(cfg FlappyConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// Validate checks that the config describes a playable world.
// In particular the widest gap plus two minimum spans must fit above the ground,
// so every spawned pipe has a positive top and bottom.
func (c FlappyConfig) Validate() error {
	w, p := c.World, c.Pipes
	switch {
	case w.Width <= 0 || w.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalid)
	case w.GroundHeight < 0 || w.GroundHeight >= w.Height:
		return fmt.Errorf("%w: ground_height must be in [0, height)", ErrInvalid)
	case c.Physics.Gravity < 0:
		return fmt.Errorf("%w: gravity must not be negative", ErrInvalid)
	case c.Physics.GroundSpeed < 0:
		return fmt.Errorf("%w: ground_speed must not be negative", ErrInvalid)
	case c.Physics.MaxFallSpeed <= 0:
		return fmt.Errorf("%w: max_fall_speed must be positive", ErrInvalid)
	case c.Physics.JumpVelocity >= 0:
		return fmt.Errorf("%w: jump_velocity must be negative (up)", ErrInvalid)
	case c.Player.Radius <= 0:
		return fmt.Errorf("%w: player radius must be positive", ErrInvalid)
	case p.Width <= 0 || p.Speed <= 0 || p.SpawnInterval <= 0:
		return fmt.Errorf("%w: pipe width, speed and spawn_interval must be positive", ErrInvalid)
	case p.MinSpan <= 0:
		return fmt.Errorf("%w: pipe min_span must be positive", ErrInvalid)
	case p.MinGap <= 0 || p.Gap < p.MinGap:
		return fmt.Errorf("%w: pipe gap must be >= min_gap > 0", ErrInvalid)
	case p.Gap+2*p.MinSpan >= w.GroundTop():
		return fmt.Errorf("%w: gap %.0f with min_span %.0f does not fit above ground at %.0f",
			ErrInvalid, p.Gap, p.MinSpan, w.GroundTop())
	case p.CenterMinRatio < 0 || p.CenterMaxRatio > 1 || p.CenterMinRatio > p.CenterMaxRatio:
		return fmt.Errorf("%w: center ratios must satisfy 0 <= min <= max <= 1", ErrInvalid)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) error {
	if preset == "" {
		return nil
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return nil
	}

	switch preset {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	default:
		return fmt.Errorf("%w: unknown difficulty preset %q", ErrInvalid, preset)
	}
	return nil
}
