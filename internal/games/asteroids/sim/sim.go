// Package sim is the asteroids simulation core: movement on a torus, ship
// control, bullet lifetime, circle collisions and asteroid splitting.
//
// The core is pure and deterministic for a given seed and input sequence.
// It knows nothing about terminals, menus or audio; it reports cues and
// round transitions and lets its caller act on them.
package sim

import (
	"math/rand"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/ecs"
)

// Input is what the core asks of an input source each tick.
// core.InputFrame implements it.
type Input interface {
	Held(a core.Action) bool
	Pressed(a core.Action) bool
}

// Transition is a round-state change requested by the core.
type Transition int

const (
	TransitionNone      Transition = iota
	TransitionRoundLost            // ship destroyed
	TransitionRoundWon             // every asteroid cleared
)

// String returns the transition name.
func (t Transition) String() string {
	switch t {
	case TransitionRoundLost:
		return "round-lost"
	case TransitionRoundWon:
		return "round-won"
	default:
		return "none"
	}
}

// Stats are cumulative counters for the current round.
type Stats struct {
	Ticks              int
	ShotsFired         int
	AsteroidsDestroyed int
	AsteroidsSpawned   int
	BulletsExpired     int
}

// TickResult reports what one tick produced.
type TickResult struct {
	Tick       uint64
	Score      uint64
	Cues       []core.Cue
	Transition Transition
}

// tickLog collects side effects while stages run.
type tickLog struct {
	cues           []core.Cue
	transition     Transition
	shotsFired     int
	destroyed      int
	spawned        int
	bulletsExpired int
}

func (l *tickLog) cue(c core.Cue) {
	l.cues = append(l.cues, c)
}

// request records a transition. The first request of a tick wins.
func (l *tickLog) request(t Transition) {
	if l.transition == TransitionNone {
		l.transition = t
	}
}

// Simulation owns the world and runs the fixed stage sequence.
type Simulation struct {
	params Params
	bounds Bounds
	rng    *rand.Rand
	world  *World
	cmds   *ecs.Commands

	asteroidSpeed float64
	score         uint64
	tick          uint64
	wave          int
	stats         Stats
}

// New creates an empty simulation. Call Start to enter active play.
func New(params Params, seed int64) *Simulation {
	w := NewWorld()
	return &Simulation{
		params:        params,
		bounds:        NewBounds(params.ArenaW, params.ArenaH),
		rng:           rand.New(rand.NewSource(seed)), //nolint:gosec // gameplay randomness, not security
		world:         w,
		cmds:          ecs.NewCommands(w.Arena),
		asteroidSpeed: params.AsteroidSpeed,
	}
}

// Start clears the world and spawns the ship and the initial asteroid field.
func (s *Simulation) Start() {
	s.Clear()
	spawnShip(s.world, s.params)
	spawnField(s.world, s.params, s.bounds, s.rng, s.params.AsteroidCount, s.asteroidSpeed)
	s.wave = 1
	s.stats.AsteroidsSpawned = s.params.AsteroidCount
}

// Clear despawns every entity and resets score, counters and wave.
func (s *Simulation) Clear() {
	s.world.Arena.Clear()
	s.score = 0
	s.tick = 0
	s.wave = 0
	s.stats = Stats{}
}

// NextWave spawns a fresh, larger field of Large asteroids. The ship, its
// score and bullets in flight are kept. A missing ship is respawned.
func (s *Simulation) NextWave() {
	s.wave++
	if _, ok := s.world.ShipEntity(); !ok {
		spawnShip(s.world, s.params)
	}
	count := s.params.AsteroidCount + s.params.WaveGrowth*(s.wave-1)
	spawnField(s.world, s.params, s.bounds, s.rng, count, s.asteroidSpeed)
	s.stats.AsteroidsSpawned += count
}

// SetAsteroidSpeed changes the speed given to asteroids spawned from now on.
func (s *Simulation) SetAsteroidSpeed(speed float64) {
	s.asteroidSpeed = speed
}

// Tick advances the simulation by one step. Stages run in a fixed order and
// each applies its structural changes before the next starts:
//
//  1. integrate positions, sync transforms
//  2. ship control (rotate, thrust, fire)
//  3. bullet lifetime
//  4. ship vs asteroids
//  5. bullets vs asteroids
//  6. win check
func (s *Simulation) Tick(in Input) TickResult {
	var log tickLog
	w := s.world

	s.tick++
	s.stats.Ticks++

	integrate(w, s.bounds)

	controlShip(w, s.params, in, s.cmds, &log)
	s.cmds.Apply()

	pruneBullets(w, s.params, s.cmds, &log)
	s.cmds.Apply()

	collideShip(w, s.params, s.cmds, &log)
	s.cmds.Apply()

	collideBullets(w, s.params, s.rng, s.asteroidSpeed, s.cmds, &log)
	s.cmds.Apply()

	if _, alive := w.ShipEntity(); alive && w.Asteroids.Len() == 0 {
		log.request(TransitionRoundWon)
	}

	s.score += uint64(log.destroyed) //nolint:gosec // destroyed is a non-negative count
	s.stats.ShotsFired += log.shotsFired
	s.stats.AsteroidsDestroyed += log.destroyed
	s.stats.AsteroidsSpawned += log.spawned
	s.stats.BulletsExpired += log.bulletsExpired

	return TickResult{
		Tick:       s.tick,
		Score:      s.score,
		Cues:       log.cues,
		Transition: log.transition,
	}
}

// Score returns the number of asteroids destroyed by bullets this round.
func (s *Simulation) Score() uint64 {
	return s.score
}

// Wave returns the current wave number (0 before Start).
func (s *Simulation) Wave() int {
	return s.wave
}

// Stats returns the round counters.
func (s *Simulation) Stats() Stats {
	return s.stats
}

// World exposes the entity stores for rendering and tests. Callers must not
// mutate it between ticks.
func (s *Simulation) World() *World {
	return s.world
}

// Bounds returns the arena rectangle.
func (s *Simulation) Bounds() Bounds {
	return s.bounds
}

// Params returns the simulation tuning.
func (s *Simulation) Params() Params {
	return s.params
}
