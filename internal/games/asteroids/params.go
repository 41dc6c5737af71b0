package asteroids

import (
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

// ParamsFromConfig converts the YAML configuration into simulation tuning.
func ParamsFromConfig(cfg config.AsteroidsConfig) sim.Params {
	p := sim.DefaultParams()

	p.ArenaW = cfg.Arena.Width
	p.ArenaH = cfg.Arena.Height

	p.RotationStep = cfg.Ship.RotationStepDeg * math.Pi / 180
	p.Accel = cfg.Ship.Acceleration
	p.Decel = cfg.Ship.Deceleration
	p.MaxSpeed = cfg.Ship.MaxSpeed
	p.ShipScale = cfg.Ship.Scale

	p.BulletSpeed = cfg.Bullet.Speed
	p.MaxTravelDistance = cfg.Bullet.MaxTravelDistance
	p.DistanceMode = sim.ParseDistanceMode(cfg.Bullet.DistanceMode)
	p.BulletScale = cfg.Bullet.Scale

	p.AsteroidCount = cfg.Asteroids.Count
	p.AsteroidSpeed = cfg.Asteroids.Speed
	p.AsteroidScale = cfg.Asteroids.Scale
	p.SplitCount = cfg.Asteroids.SplitCount
	p.SafeRadius = cfg.Asteroids.SafeRadius
	p.WaveGrowth = cfg.Asteroids.WaveGrowth
	p.Radii[sim.SizeLarge] = cfg.Asteroids.Radii.Large
	p.Radii[sim.SizeMedium] = cfg.Asteroids.Radii.Medium
	p.Radii[sim.SizeSmall] = cfg.Asteroids.Radii.Small
	p.Radii[sim.SizeTiny] = cfg.Asteroids.Radii.Tiny

	return p
}
