package sim

import (
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/ecs"
)

// Direction returns the unit forward vector for a heading. Heading 0 points
// up (+Y); positive headings turn counter-clockwise.
func Direction(heading float64) core.Vec2 {
	return core.FromAngle(heading+math.Pi/2, 1)
}

// LimitSpeed rescales v to max if it is faster. The zero vector stays zero.
func LimitSpeed(v core.Vec2, maxSpeed float64) core.Vec2 {
	if v.Length() > maxSpeed {
		return v.Normalize().Scale(maxSpeed)
	}
	return v
}

// spawnShip places a stationary ship at the origin facing up.
func spawnShip(w *World, p Params) ecs.Entity {
	e := w.Arena.Spawn()
	w.place(e, core.Vec2{}, core.Vec2{}, p.ShipScale, 0)
	w.Ships.Set(e, Ship{})
	return e
}

// controlShip applies rotation, thrust and fire for one tick.
// Without a live ship it does nothing.
func controlShip(w *World, p Params, in Input, cmds *ecs.Commands, log *tickLog) {
	e, ok := w.ShipEntity()
	if !ok {
		return
	}
	ship := w.Ships.Ptr(e)
	vel := w.Velocities.Ptr(e)
	pos, _ := w.Positions.Get(e)

	if in.Held(core.ActionRotateLeft) {
		ship.Heading += p.RotationStep
	}
	if in.Held(core.ActionRotateRight) {
		ship.Heading -= p.RotationStep
	}
	if tr := w.Transforms.Ptr(e); tr != nil {
		tr.Rotation = ship.Heading
	}

	dir := Direction(ship.Heading)
	if in.Held(core.ActionThrust) {
		*vel = LimitSpeed(vel.Add(dir.Scale(p.Accel)), p.MaxSpeed)
	} else {
		*vel = vel.Scale(1 - p.Decel)
	}

	if in.Pressed(core.ActionFire) {
		heading := ship.Heading
		cmds.Spawn(func(b ecs.Entity) {
			w.place(b, pos, dir.Scale(p.BulletSpeed), p.BulletScale, heading+math.Pi/2)
			w.Bullets.Set(b, Bullet{Origin: pos, Last: pos})
		})
		log.shotsFired++
		log.cue(core.CueFire)
	}
}
