package sim

import "math"

// DistanceMode selects how bullet travel distance is measured.
type DistanceMode int

const (
	// DistanceArc accumulates the true path length, tick by tick.
	// A wrap-around teleport counts as one ordinary step.
	DistanceArc DistanceMode = iota

	// DistanceFromSpawn adds the straight-line distance from the spawn point
	// to the running total every tick. This despawns bullets much earlier
	// than DistanceArc and is kept for compatibility with the legacy timing.
	DistanceFromSpawn
)

// String returns the config name of the mode.
func (m DistanceMode) String() string {
	if m == DistanceFromSpawn {
		return "spawn"
	}
	return "arc"
}

// ParseDistanceMode maps a config name to a mode. Unknown names map to arc.
func ParseDistanceMode(s string) DistanceMode {
	if s == "spawn" {
		return DistanceFromSpawn
	}
	return DistanceArc
}

// Params holds every tunable of the simulation. Units are world units and
// ticks; angles are radians.
type Params struct {
	ArenaW float64
	ArenaH float64

	RotationStep float64 // heading change per tick while rotating
	Accel        float64 // velocity gain per tick while thrusting
	Decel        float64 // fraction of velocity lost per tick while coasting
	MaxSpeed     float64
	ShipScale    float64 // ship hit radius and wrap half-scale

	BulletSpeed       float64
	MaxTravelDistance float64
	DistanceMode      DistanceMode
	BulletScale       float64

	AsteroidCount int
	AsteroidSpeed float64
	AsteroidScale float64 // wrap half-scale; hit radius comes from Radii
	SplitCount    int
	Radii         [SizeCount]float64 // indexed by Size ordinal
	SafeRadius    float64            // no initial asteroid spawns this close to the ship
	WaveGrowth    int                // extra asteroids per wave in endless play
}

// DefaultParams returns the reference tuning.
func DefaultParams() Params {
	return Params{
		ArenaW: 1200,
		ArenaH: 640,

		RotationStep: 10 * math.Pi / 360,
		Accel:        0.2,
		Decel:        0.01,
		MaxSpeed:     10,
		ShipScale:    1,

		BulletSpeed:       8,
		MaxTravelDistance: 900,
		DistanceMode:      DistanceArc,
		BulletScale:       1,

		AsteroidCount: 12,
		AsteroidSpeed: 1,
		AsteroidScale: 1,
		SplitCount:    2,
		Radii: [SizeCount]float64{
			SizeTiny:   7.5,
			SizeSmall:  15,
			SizeMedium: 35,
			SizeLarge:  55,
		},
		SafeRadius: 120,
		WaveGrowth: 2,
	}
}

// Radius returns the hit radius for an asteroid size.
func (p Params) Radius(s Size) float64 {
	if !s.Valid() {
		return 0
	}
	return p.Radii[s]
}
