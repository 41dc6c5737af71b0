package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs, the journal and logs.
const AppDir = ".asteroids"

// LoadAsteroids loads the Asteroids configuration.
// Search order: customPath -> ~/.asteroids/configs/asteroids.yaml -> ./configs/asteroids.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names. A custom path that cannot be read or parsed is an error;
// the fallback locations are skipped silently.
func LoadAsteroids(customPath string) (AsteroidsConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return AsteroidsConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return AsteroidsConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserPath("configs", "asteroids.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "asteroids.yaml")); err == nil {
		if cfg, err := decode(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	var cfg AsteroidsConfig
	if err := yaml.Unmarshal(defaultAsteroidsYAML, &cfg); err != nil {
		return DefaultAsteroidsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode parses data over the hardcoded defaults.
func decode(data []byte) (AsteroidsConfig, error) {
	cfg := DefaultAsteroidsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// UserPath joins elem under ~/.asteroids, or returns empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}

// ApplyAsteroidsPreset modifies the config based on a difficulty preset.
func ApplyAsteroidsPreset(cfg *AsteroidsConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust the field based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Asteroids.Count = 8
		cfg.Asteroids.Speed = 0.75
	case DifficultyHard:
		cfg.Asteroids.Count = 16
		cfg.Asteroids.Speed = 1.5
	}
}

// Validate reports every setting that would make the simulation
// meaningless.
func (c AsteroidsConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("arena.width", c.Arena.Width)
	positive("arena.height", c.Arena.Height)
	positive("ship.max_speed", c.Ship.MaxSpeed)
	positive("ship.scale", c.Ship.Scale)
	positive("bullet.speed", c.Bullet.Speed)
	positive("bullet.max_travel_distance", c.Bullet.MaxTravelDistance)
	positive("bullet.scale", c.Bullet.Scale)
	positive("asteroids.speed", c.Asteroids.Speed)
	positive("asteroids.scale", c.Asteroids.Scale)
	positive("asteroids.radii.large", c.Asteroids.Radii.Large)
	positive("asteroids.radii.medium", c.Asteroids.Radii.Medium)
	positive("asteroids.radii.small", c.Asteroids.Radii.Small)
	positive("asteroids.radii.tiny", c.Asteroids.Radii.Tiny)

	if c.Ship.Deceleration < 0 || c.Ship.Deceleration >= 1 {
		errs = append(errs, fmt.Errorf("ship.deceleration must be in [0, 1), got %v", c.Ship.Deceleration))
	}
	if c.Asteroids.Count < 1 {
		errs = append(errs, fmt.Errorf("asteroids.count must be at least 1, got %d", c.Asteroids.Count))
	}
	if c.Asteroids.SplitCount < 1 {
		errs = append(errs, fmt.Errorf("asteroids.split_count must be at least 1, got %d", c.Asteroids.SplitCount))
	}
	if c.Asteroids.WaveGrowth < 0 {
		errs = append(errs, fmt.Errorf("asteroids.wave_growth must not be negative, got %d", c.Asteroids.WaveGrowth))
	}
	switch c.Bullet.DistanceMode {
	case "", "arc", "spawn":
	default:
		errs = append(errs, fmt.Errorf("bullet.distance_mode must be arc or spawn, got %q", c.Bullet.DistanceMode))
	}
	switch c.Difficulty.Progression.Type {
	case ProgressNone, ProgressScore, ProgressTime, ProgressWave:
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type must be none, score, time or wave, got %q", c.Difficulty.Progression.Type))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be in [0, 1], got %v", c.Audio.Volume))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
