package config

import (
	_ "embed"
)

//go:embed defaults/asteroids.yaml
var defaultAsteroidsYAML []byte

// DefaultAsteroidsConfig returns the default Asteroids configuration.
// It mirrors defaults/asteroids.yaml and is used when the embedded file
// cannot be parsed.
func DefaultAsteroidsConfig() AsteroidsConfig {
	return AsteroidsConfig{
		Arena: ArenaConfig{
			Width:  1200,
			Height: 640,
		},
		Ship: ShipConfig{
			RotationStepDeg: 5,
			Acceleration:    0.2,
			Deceleration:    0.01,
			MaxSpeed:        10,
			Scale:           1,
		},
		Bullet: BulletConfig{
			Speed:             8,
			MaxTravelDistance: 900,
			DistanceMode:      "arc",
			Scale:             1,
		},
		Asteroids: FieldConfig{
			Count:      12,
			Speed:      1,
			Scale:      1,
			SplitCount: 2,
			SafeRadius: 120,
			WaveGrowth: 2,
			Radii: RadiusConfig{
				Large:  55,
				Medium: 35,
				Small:  15,
				Tiny:   7.5,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressScore,
				MaxAt: 200,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultAsteroidsYAML
}
