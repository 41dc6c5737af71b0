package sim

import "github.com/vovakirdan/tui-asteroids/internal/ecs"

// pruneBullets updates every bullet's travel distance and queues removal of
// bullets past the travel limit.
func pruneBullets(w *World, p Params, cmds *ecs.Commands, log *tickLog) {
	for _, e := range w.Bullets.Entities() {
		b := w.Bullets.Ptr(e)
		pos, _ := w.Positions.Get(e)

		switch p.DistanceMode {
		case DistanceFromSpawn:
			b.Traveled += pos.Distance(b.Origin)
		default:
			step := pos.Distance(b.Last)
			vel, _ := w.Velocities.Get(e)
			// A step longer than one tick of flight is a wrap teleport.
			if speed := vel.Length(); step > speed+1e-9 {
				step = speed
			}
			b.Traveled += step
		}
		b.Last = pos

		if b.Traveled > p.MaxTravelDistance {
			cmds.Despawn(e)
			log.bulletsExpired++
		}
	}
}
