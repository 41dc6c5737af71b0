package sim

import (
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/ecs"
)

// EntitySnapshot is the observable state of one entity.
type EntitySnapshot struct {
	Kind     string // "ship", "bullet" or "asteroid"
	X, Y     float64
	VX, VY   float64
	Rotation float64
	Size     Size    // asteroids only
	Traveled float64 // bullets only
}

// Snapshot captures the simulation state for determinism tests.
type Snapshot struct {
	Tick      uint64
	Score     uint64
	Wave      int
	Ship      *EntitySnapshot
	Bullets   []EntitySnapshot
	Asteroids []EntitySnapshot
}

// Snapshot returns the current state. Entities appear in store order, which
// is deterministic for a given seed and input sequence.
func (s *Simulation) Snapshot() Snapshot {
	w := s.world
	snap := Snapshot{
		Tick:  s.tick,
		Score: s.score,
		Wave:  s.wave,
	}

	if e, ok := w.ShipEntity(); ok {
		es := s.entitySnapshot("ship", e)
		snap.Ship = &es
	}
	for _, e := range w.Bullets.Entities() {
		es := s.entitySnapshot("bullet", e)
		b, _ := w.Bullets.Get(e)
		es.Traveled = b.Traveled
		snap.Bullets = append(snap.Bullets, es)
	}
	for _, e := range w.Asteroids.Entities() {
		es := s.entitySnapshot("asteroid", e)
		a, _ := w.Asteroids.Get(e)
		es.Size = a.Size
		snap.Asteroids = append(snap.Asteroids, es)
	}
	return snap
}

func (s *Simulation) entitySnapshot(kind string, e ecs.Entity) EntitySnapshot {
	w := s.world
	pos, _ := w.Positions.Get(e)
	vel, _ := w.Velocities.Get(e)
	tr, _ := w.Transforms.Get(e)
	return EntitySnapshot{
		Kind:     kind,
		X:        pos.X,
		Y:        pos.Y,
		VX:       vel.X,
		VY:       vel.Y,
		Rotation: tr.Rotation,
	}
}

// Hash returns a hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + snap.Score
	h = h*31 + uint64(snap.Wave) //#nosec G115 -- hash computation

	if snap.Ship != nil {
		h = snap.Ship.hash(h*31 + 1)
	}
	h = h*31 + uint64(len(snap.Bullets))
	for i := range snap.Bullets {
		h = snap.Bullets[i].hash(h)
	}
	h = h*31 + uint64(len(snap.Asteroids))
	for i := range snap.Asteroids {
		h = snap.Asteroids[i].hash(h)
	}
	return h
}

func (es *EntitySnapshot) hash(h uint64) uint64 {
	for _, f := range []float64{es.X, es.Y, es.VX, es.VY, es.Rotation, es.Traveled} {
		h = h*31 + math.Float64bits(f)
	}
	return h*31 + uint64(es.Size) //#nosec G115 -- hash computation
}
