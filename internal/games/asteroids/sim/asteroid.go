package sim

import (
	"math/rand"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/ecs"
)

// Size is an asteroid tier. The ordinal grows with the asteroid:
// Tiny=0 < Small=1 < Medium=2 < Large=3.
type Size int

const (
	SizeTiny Size = iota
	SizeSmall
	SizeMedium
	SizeLarge

	SizeCount = 4
)

// String returns the tier name.
func (s Size) String() string {
	switch s {
	case SizeTiny:
		return "tiny"
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the four tiers.
func (s Size) Valid() bool {
	return s >= SizeTiny && s <= SizeLarge
}

// Smaller returns the next tier down. It returns false for Tiny, which does
// not split.
func (s Size) Smaller() (Size, bool) {
	if s <= SizeTiny || !s.Valid() {
		return SizeTiny, false
	}
	return s - 1, true
}

// spawnAsteroid creates an asteroid immediately.
func spawnAsteroid(w *World, p Params, rng *rand.Rand, pos core.Vec2, size Size, speed float64) ecs.Entity {
	e := w.Arena.Spawn()
	w.place(e, pos, core.RandomUnitVector(rng).Scale(speed), p.AsteroidScale, 0)
	w.Asteroids.Set(e, Asteroid{Size: size})
	return e
}

// spawnField places count Large asteroids at random positions inside the
// arena. Positions within SafeRadius of the origin (the ship spawn) are
// re-rolled a bounded number of times.
func spawnField(w *World, p Params, b Bounds, rng *rand.Rand, count int, speed float64) {
	const maxRolls = 16

	for range count {
		var pos core.Vec2
		for roll := 0; roll < maxRolls; roll++ {
			r := core.RandomPoint(rng)
			pos = core.V2(b.MinX+r.X*b.Width(), b.MinY+r.Y*b.Height())
			if pos.Length() >= p.SafeRadius {
				break
			}
		}
		spawnAsteroid(w, p, rng, pos, SizeLarge, speed)
	}
}

// queueSplit queues the children of a destroyed asteroid: SplitCount
// asteroids one tier smaller at the parent position, each heading in its own
// random direction. Tiny parents produce nothing. Returns the number queued.
func queueSplit(w *World, p Params, rng *rand.Rand, cmds *ecs.Commands, parent Asteroid, pos core.Vec2, speed float64) int {
	child, ok := parent.Size.Smaller()
	if !ok {
		return 0
	}
	for range p.SplitCount {
		// Directions are drawn now so the RNG sequence follows scan order.
		vel := core.RandomUnitVector(rng).Scale(speed)
		cmds.Spawn(func(e ecs.Entity) {
			w.place(e, pos, vel, p.AsteroidScale, 0)
			w.Asteroids.Set(e, Asteroid{Size: child})
		})
	}
	return p.SplitCount
}
