// Package config provides YAML-based game configuration loading and
// difficulty management for the asteroids game.
package config

// AsteroidsConfig contains all configuration for the Asteroids game.
type AsteroidsConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Ship       ShipConfig       `yaml:"ship"`
	Bullet     BulletConfig     `yaml:"bullet"`
	Asteroids  FieldConfig      `yaml:"asteroids"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Audio      AudioConfig      `yaml:"audio"`
}

// ArenaConfig defines the playfield size in world units.
// The arena is centered at the origin.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ShipConfig defines ship handling.
type ShipConfig struct {
	RotationStepDeg float64 `yaml:"rotation_step_deg"` // Degrees turned per tick
	Acceleration    float64 `yaml:"acceleration"`
	Deceleration    float64 `yaml:"deceleration"` // Fraction of speed lost per coasting tick
	MaxSpeed        float64 `yaml:"max_speed"`
	Scale           float64 `yaml:"scale"`
}

// BulletConfig defines projectile parameters.
type BulletConfig struct {
	Speed             float64 `yaml:"speed"`
	MaxTravelDistance float64 `yaml:"max_travel_distance"`
	DistanceMode      string  `yaml:"distance_mode"` // "arc" or "spawn"
	Scale             float64 `yaml:"scale"`
}

// FieldConfig defines the asteroid field.
type FieldConfig struct {
	Count      int          `yaml:"count"`
	Speed      float64      `yaml:"speed"`
	Scale      float64      `yaml:"scale"`
	SplitCount int          `yaml:"split_count"`
	SafeRadius float64      `yaml:"safe_radius"`
	WaveGrowth int          `yaml:"wave_growth"` // Extra asteroids per endless wave
	Radii      RadiusConfig `yaml:"radii"`
}

// RadiusConfig is the hit radius of each asteroid size.
type RadiusConfig struct {
	Large  float64 `yaml:"large"`
	Medium float64 `yaml:"medium"`
	Small  float64 `yaml:"small"`
	Tiny   float64 `yaml:"tiny"`
}

// AudioConfig controls the sound cues.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0 mute .. 1.0 full
	SampleRate int     `yaml:"sample_rate"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", "wave" or "none"
	MaxAt int    `yaml:"max_at"` // Score, ticks or cleared waves at full difficulty
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to asteroid speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI name to a preset. Unknown names return "".
func ParsePreset(name string) DifficultyPreset {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

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
