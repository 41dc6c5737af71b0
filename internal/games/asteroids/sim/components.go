package sim

import (
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/ecs"
)

// Ship is the player-controlled singleton.
type Ship struct {
	Heading float64 // radians, 0 faces up (+Y)
}

// Bullet tracks how far a projectile has flown.
type Bullet struct {
	Origin   core.Vec2 // spawn point
	Last     core.Vec2 // position at the previous lifecycle check
	Traveled float64
}

// Asteroid is a drifting rock of a discrete size.
type Asteroid struct {
	Size Size
}

// Transform is the render-side copy of an entity's placement. It is synced
// from Position after integration and is never read by simulation logic.
type Transform struct {
	Pos      core.Vec2
	Rotation float64
}

// World is the entity arena plus its component side tables.
type World struct {
	Arena *ecs.Arena

	Positions  *ecs.Store[core.Vec2]
	Velocities *ecs.Store[core.Vec2]
	Scales     *ecs.Store[float64]
	Transforms *ecs.Store[Transform]

	Ships     *ecs.Store[Ship]
	Bullets   *ecs.Store[Bullet]
	Asteroids *ecs.Store[Asteroid]
}

// NewWorld creates an empty world with all stores registered on its arena.
func NewWorld() *World {
	arena := ecs.NewArena()
	return &World{
		Arena:      arena,
		Positions:  ecs.NewStore[core.Vec2](arena),
		Velocities: ecs.NewStore[core.Vec2](arena),
		Scales:     ecs.NewStore[float64](arena),
		Transforms: ecs.NewStore[Transform](arena),
		Ships:      ecs.NewStore[Ship](arena),
		Bullets:    ecs.NewStore[Bullet](arena),
		Asteroids:  ecs.NewStore[Asteroid](arena),
	}
}

// ShipEntity returns the live ship, if any.
func (w *World) ShipEntity() (ecs.Entity, bool) {
	ships := w.Ships.Entities()
	if len(ships) == 0 {
		return ecs.Entity{}, false
	}
	return ships[0], true
}

// scaleOf returns the entity's scale, defaulting to 1.
func (w *World) scaleOf(e ecs.Entity) float64 {
	if s, ok := w.Scales.Get(e); ok {
		return s
	}
	return 1
}

// place attaches the movement components shared by every moving entity.
func (w *World) place(e ecs.Entity, pos, vel core.Vec2, scale, rotation float64) {
	w.Positions.Set(e, pos)
	w.Velocities.Set(e, vel)
	w.Scales.Set(e, scale)
	w.Transforms.Set(e, Transform{Pos: pos, Rotation: rotation})
}
