package sim

import (
	"math/rand"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/ecs"
)

// asteroidHitbox returns the asteroid's collision circle.
func asteroidHitbox(w *World, p Params, e ecs.Entity) (core.Circle, Asteroid) {
	a, _ := w.Asteroids.Get(e)
	pos, _ := w.Positions.Get(e)
	return core.Circle{Center: pos, Radius: p.Radius(a.Size)}, a
}

// collideShip checks the ship against every asteroid. The first overlap
// destroys the ship and ends the scan. Score is not affected.
// Returns true if the ship was destroyed.
func collideShip(w *World, p Params, cmds *ecs.Commands, log *tickLog) bool {
	ship, ok := w.ShipEntity()
	if !ok {
		return false
	}
	shipPos, _ := w.Positions.Get(ship)
	shipBox := core.Circle{Center: shipPos, Radius: w.scaleOf(ship)}

	for _, e := range w.Asteroids.Entities() {
		box, _ := asteroidHitbox(w, p, e)
		if shipBox.Overlaps(box) {
			cmds.Despawn(ship)
			log.cue(core.CueShipDestroyed)
			log.request(TransitionRoundLost)
			return true
		}
	}
	return false
}

// collideBullets checks every bullet against every asteroid. A hit removes
// the bullet and the asteroid, queues the asteroid's children and scores one
// point. Entities already queued for removal in this scan are skipped, so a
// bullet hits at most one asteroid and an asteroid is destroyed at most once.
func collideBullets(w *World, p Params, rng *rand.Rand, speed float64, cmds *ecs.Commands, log *tickLog) {
	asteroids := w.Asteroids.Entities()

	for _, b := range w.Bullets.Entities() {
		if cmds.Pending(b) {
			continue
		}
		bpos, _ := w.Positions.Get(b)
		bulletBox := core.Circle{Center: bpos, Radius: w.scaleOf(b)}

		for _, a := range asteroids {
			if cmds.Pending(a) {
				continue
			}
			box, asteroid := asteroidHitbox(w, p, a)
			if !bulletBox.Overlaps(box) {
				continue
			}

			cmds.Despawn(b)
			log.spawned += queueSplit(w, p, rng, cmds, asteroid, box.Center, speed)
			cmds.Despawn(a)
			log.destroyed++
			log.cue(core.CueAsteroidDestroyed)
			break
		}
	}
}
