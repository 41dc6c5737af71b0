package config

import "math"

// Progression sources.
const (
	ProgressNone  = "none"
	ProgressScore = "score" // level grows with points
	ProgressTime  = "time"  // level grows with ticks of active play
	ProgressWave  = "wave"  // level grows with cleared waves (endless)
)

// Progress is how far a round has come.
type Progress struct {
	Score uint64
	Ticks int
	Wave  int
}

// DifficultyManager turns round progress into a level in [0, 1] and scales
// the speed of newly split asteroids with it.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0, 1)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressNone
}

// Level interpolates from the initial level to 1 as p approaches MaxAt.
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.cfg.InitialLevel
	}

	var x float64
	switch d.cfg.Progression.Type {
	case ProgressScore:
		x = float64(p.Score)
	case ProgressTime:
		x = float64(p.Ticks)
	case ProgressWave:
		x = float64(p.Wave - 1)
	default:
		return d.cfg.InitialLevel
	}

	maxAt := math.Max(float64(d.cfg.Progression.MaxAt), 1)
	t := clampF(x/maxAt, 0, 1)
	return d.cfg.InitialLevel + t*(1-d.cfg.InitialLevel)
}

// AsteroidSpeed returns base scaled by the level: base at level 0, up to
// base * (1 + speed_multiplier) at level 1. Disabled progression keeps base.
func (d *DifficultyManager) AsteroidSpeed(base float64, p Progress) float64 {
	if !d.IsEnabled() {
		return base
	}
	return base * (1 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier)
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
