package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/ecs"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// newEmpty returns a simulation with no entities.
func newEmpty(p Params) *Simulation {
	return New(p, 1)
}

func addShip(s *Simulation, pos, vel core.Vec2) ecs.Entity {
	e := spawnShip(s.world, s.params)
	s.world.Positions.Set(e, pos)
	s.world.Velocities.Set(e, vel)
	return e
}

func addAsteroid(s *Simulation, pos, vel core.Vec2, size Size) ecs.Entity {
	e := s.world.Arena.Spawn()
	s.world.place(e, pos, vel, s.params.AsteroidScale, 0)
	s.world.Asteroids.Set(e, Asteroid{Size: size})
	return e
}

func addBullet(s *Simulation, pos, vel core.Vec2) ecs.Entity {
	e := s.world.Arena.Spawn()
	s.world.place(e, pos, vel, s.params.BulletScale, 0)
	s.world.Bullets.Set(e, Bullet{Origin: pos, Last: pos})
	return e
}

func countCue(cues []core.Cue, c core.Cue) int {
	n := 0
	for _, got := range cues {
		if got == c {
			n++
		}
	}
	return n
}

func TestWrapScenario(t *testing.T) {
	b := NewBounds(1200, 640)
	got := Wrap(core.V2(599, 0), core.V2(5, 0), 0, b)
	if !near(got.X, -600) || !near(got.Y, 0) {
		t.Errorf("Wrap((599,0)+(5,0)) = %+v, expected (-600, 0)", got)
	}
}

func TestWrapTable(t *testing.T) {
	b := NewBounds(1200, 640)

	tests := []struct {
		name string
		pos  core.Vec2
		vel  core.Vec2
		half float64
		want core.Vec2
	}{
		{"inside stays", core.V2(10, 10), core.V2(1, -1), 1, core.V2(11, 9)},
		{"inside band stays", core.V2(600, 0), core.V2(0.5, 0), 1, core.V2(600.5, 0)},
		{"past right", core.V2(600, 0), core.V2(2, 0), 1, core.V2(-601, 0)},
		{"past left", core.V2(-600, 0), core.V2(-2, 0), 1, core.V2(601, 0)},
		{"past top", core.V2(0, 320), core.V2(0, 3), 1, core.V2(0, -321)},
		{"past bottom", core.V2(0, -320), core.V2(0, -3), 1, core.V2(0, 321)},
		{"diagonal", core.V2(600, 320), core.V2(2, 2), 1, core.V2(-601, -321)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.pos, tt.vel, tt.half, b)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Wrap = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsEntitiesInBand(t *testing.T) {
	b := NewBounds(1200, 640)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		pos := core.V2(rng.Float64()*1200-600, rng.Float64()*640-320)
		vel := core.RandomUnitVector(rng).Scale(rng.Float64() * 10)
		for step := 0; step < 200; step++ {
			pos = Wrap(pos, vel, 1, b)
			if !b.InBand(pos, 1) {
				t.Fatalf("position %+v left the wrap band", pos)
			}
		}
	}
}

func TestShipRotation(t *testing.T) {
	p := DefaultParams()
	s := newEmpty(p)
	ship := addShip(s, core.Vec2{}, core.Vec2{})

	in := core.NewInputFrame()
	in.Hold(core.ActionRotateLeft)
	s.Tick(in)

	st, _ := s.world.Ships.Get(ship)
	if !near(st.Heading, p.RotationStep) {
		t.Errorf("heading = %v, expected %v", st.Heading, p.RotationStep)
	}
	tr, _ := s.world.Transforms.Get(ship)
	if !near(tr.Rotation, st.Heading) {
		t.Errorf("transform rotation = %v, expected %v", tr.Rotation, st.Heading)
	}

	in.Clear()
	in.Hold(core.ActionRotateRight)
	s.Tick(in)
	s.Tick(in)

	st, _ = s.world.Ships.Get(ship)
	if !near(st.Heading, -p.RotationStep) {
		t.Errorf("heading = %v, expected %v", st.Heading, -p.RotationStep)
	}
}

func TestShipThrustSpeedCeiling(t *testing.T) {
	p := DefaultParams()
	s := newEmpty(p)
	ship := addShip(s, core.Vec2{}, core.Vec2{})

	in := core.NewInputFrame()
	in.Hold(core.ActionThrust)
	in.Hold(core.ActionRotateLeft)

	for i := 0; i < 300; i++ {
		s.Tick(in)
		vel, _ := s.world.Velocities.Get(ship)
		if vel.Length() > p.MaxSpeed+eps {
			t.Fatalf("tick %d: speed %v exceeds %v", i, vel.Length(), p.MaxSpeed)
		}
	}
}

func TestShipThrustAlongHeading(t *testing.T) {
	p := DefaultParams()
	s := newEmpty(p)
	ship := addShip(s, core.Vec2{}, core.Vec2{})

	in := core.NewInputFrame()
	in.Hold(core.ActionThrust)
	s.Tick(in)

	vel, _ := s.world.Velocities.Get(ship)
	if !near(vel.X, 0) || !near(vel.Y, p.Accel) {
		t.Errorf("velocity after one thrust tick = %+v, expected (0, %v)", vel, p.Accel)
	}
}

func TestShipCoastingDecay(t *testing.T) {
	p := DefaultParams()
	s := newEmpty(p)
	ship := addShip(s, core.Vec2{}, core.V2(10, 0))

	s.Tick(core.NewInputFrame())

	vel, _ := s.world.Velocities.Get(ship)
	if !near(vel.X, 10*(1-p.Decel)) {
		t.Errorf("coasting velocity = %v, expected %v", vel.X, 10*(1-p.Decel))
	}
}

func TestLimitSpeedZero(t *testing.T) {
	if got := LimitSpeed(core.Vec2{}, 10); !got.IsZero() {
		t.Errorf("LimitSpeed(zero) = %+v, expected zero", got)
	}
	if got := LimitSpeed(core.V2(30, 40), 10); !near(got.Length(), 10) {
		t.Errorf("LimitSpeed length = %v, expected 10", got.Length())
	}
}

func TestFireOnPressOnly(t *testing.T) {
	p := DefaultParams()
	s := newEmpty(p)
	addShip(s, core.Vec2{}, core.Vec2{})

	in := core.NewInputFrame()
	in.Set(core.ActionFire)
	res := s.Tick(in)

	if s.world.Bullets.Len() != 1 {
		t.Fatalf("bullets = %d, expected 1", s.world.Bullets.Len())
	}
	if countCue(res.Cues, core.CueFire) != 1 {
		t.Errorf("expected one fire cue, got %v", res.Cues)
	}

	// Held without a new press does not fire again.
	in.Clear()
	in.Hold(core.ActionFire)
	s.Tick(in)
	if s.world.Bullets.Len() != 1 {
		t.Errorf("bullets = %d after held fire, expected 1", s.world.Bullets.Len())
	}

	b := s.world.Bullets.Entities()[0]
	vel, _ := s.world.Velocities.Get(b)
	if !near(vel.X, 0) || !near(vel.Y, p.BulletSpeed) {
		t.Errorf("bullet velocity = %+v, expected (0, %v)", vel, p.BulletSpeed)
	}
	if s.Stats().ShotsFired != 1 {
		t.Errorf("ShotsFired = %d, expected 1", s.Stats().ShotsFired)
	}
}

func TestNoShipIsNoop(t *testing.T) {
	s := newEmpty(DefaultParams())
	addAsteroid(s, core.V2(0, 0), core.Vec2{}, SizeLarge)

	in := core.NewInputFrame()
	in.Set(core.ActionFire)
	in.Hold(core.ActionThrust)
	res := s.Tick(in)

	if s.world.Bullets.Len() != 0 {
		t.Error("fire without a ship should not spawn bullets")
	}
	if res.Transition != TransitionNone {
		t.Errorf("transition = %v, expected none", res.Transition)
	}
	if len(res.Cues) != 0 {
		t.Errorf("expected no cues, got %v", res.Cues)
	}
}

func TestSplitScenario(t *testing.T) {
	p := DefaultParams()
	s := newEmpty(p)
	pos := core.V2(100, 50)
	parent := addAsteroid(s, pos, core.Vec2{}, SizeMedium)
	bullet := addBullet(s, pos, core.Vec2{})

	res := s.Tick(core.NewInputFrame())

	if s.world.Arena.Alive(parent) || s.world.Arena.Alive(bullet) {
		t.Fatal("parent asteroid and bullet should be removed")
	}
	if res.Score != 1 || s.Score() != 1 {
		t.Errorf("score = %d, expected 1", s.Score())
	}
	if countCue(res.Cues, core.CueAsteroidDestroyed) != 1 {
		t.Errorf("expected one destroyed cue, got %v", res.Cues)
	}

	children := s.world.Asteroids.Entities()
	if len(children) != 2 {
		t.Fatalf("children = %d, expected 2", len(children))
	}
	for _, c := range children {
		a, _ := s.world.Asteroids.Get(c)
		if a.Size != SizeSmall {
			t.Errorf("child size = %v, expected small", a.Size)
		}
		if got := p.Radius(a.Size); got != 15 {
			t.Errorf("child radius = %v, expected 15", got)
		}
		cpos, _ := s.world.Positions.Get(c)
		if !near(cpos.X, 100) || !near(cpos.Y, 50) {
			t.Errorf("child position = %+v, expected (100, 50)", cpos)
		}
		vel, _ := s.world.Velocities.Get(c)
		if !near(vel.Length(), p.AsteroidSpeed) {
			t.Errorf("child speed = %v, expected %v", vel.Length(), p.AsteroidSpeed)
		}
	}
}

func TestTinyDoesNotSplit(t *testing.T) {
	s := newEmpty(DefaultParams())
	addShip(s, core.V2(-500, -300), core.Vec2{})
	addAsteroid(s, core.V2(10, 10), core.Vec2{}, SizeTiny)
	addBullet(s, core.V2(10, 10), core.Vec2{})

	res := s.Tick(core.NewInputFrame())

	if s.world.Asteroids.Len() != 0 {
		t.Errorf("asteroids = %d, expected 0", s.world.Asteroids.Len())
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, expected 1", s.Score())
	}
	if res.Transition != TransitionRoundWon {
		t.Errorf("transition = %v, expected round-won", res.Transition)
	}
}

func TestShipCollisionScenario(t *testing.T) {
	s := newEmpty(DefaultParams())
	ship := addShip(s, core.Vec2{}, core.Vec2{})
	addAsteroid(s, core.V2(50, 0), core.Vec2{}, SizeLarge)

	res := s.Tick(core.NewInputFrame())

	if s.world.Arena.Alive(ship) {
		t.Error("ship should be destroyed")
	}
	if res.Transition != TransitionRoundLost {
		t.Errorf("transition = %v, expected round-lost", res.Transition)
	}
	if countCue(res.Cues, core.CueShipDestroyed) != 1 {
		t.Errorf("expected one ship-destroyed cue, got %v", res.Cues)
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, ship collision must not score", s.Score())
	}
	if s.world.Asteroids.Len() != 1 {
		t.Error("ship collision must not destroy the asteroid")
	}
}

func TestShipCollisionTouchingIsMiss(t *testing.T) {
	s := newEmpty(DefaultParams())
	ship := addShip(s, core.Vec2{}, core.Vec2{})
	addAsteroid(s, core.V2(56, 0), core.Vec2{}, SizeLarge)

	res := s.Tick(core.NewInputFrame())
	if !s.world.Arena.Alive(ship) {
		t.Error("touching circles should not collide")
	}
	if res.Transition != TransitionNone {
		t.Errorf("transition = %v, expected none", res.Transition)
	}
}

func TestBulletExpiry(t *testing.T) {
	tests := []struct {
		name     string
		mode     DistanceMode
		maxTicks int // tick on which the bullet is removed
	}{
		// 8k > 900 first at k = 113.
		{"arc", DistanceArc, 113},
		// 4k(k+1) > 900 first at k = 15.
		{"spawn", DistanceFromSpawn, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.DistanceMode = tt.mode
			s := newEmpty(p)
			bullet := addBullet(s, core.Vec2{}, core.V2(p.BulletSpeed, 0))

			for tick := 1; tick <= tt.maxTicks+5; tick++ {
				s.Tick(core.NewInputFrame())
				alive := s.world.Arena.Alive(bullet)
				if tick < tt.maxTicks && !alive {
					t.Fatalf("bullet removed early at tick %d", tick)
				}
				if tick >= tt.maxTicks && alive {
					t.Fatalf("bullet still alive at tick %d", tick)
				}
			}
			if got := s.Stats().BulletsExpired; got != 1 {
				t.Errorf("BulletsExpired = %d, expected 1", got)
			}
		})
	}
}

func TestBulletWrapCountsOneStep(t *testing.T) {
	tests := []struct {
		name string
		pos  core.Vec2
		vel  core.Vec2
	}{
		{"horizontal", core.V2(590, 0), core.V2(8, 0)},
		{"vertical", core.V2(0, 310), core.V2(0, 8)},
		{"backwards", core.V2(-590, 0), core.V2(-8, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.DistanceMode = DistanceArc
			s := newEmpty(p)
			bullet := addBullet(s, tt.pos, tt.vel)

			for range 3 {
				s.Tick(core.NewInputFrame())
			}

			if !s.world.Arena.Alive(bullet) {
				t.Fatal("bullet removed after a wrap")
			}
			pos, _ := s.world.Positions.Get(bullet)
			if wrapped := pos.X*tt.pos.X < 0 || pos.Y*tt.pos.Y < 0; !wrapped {
				t.Fatalf("bullet did not wrap, at %v", pos)
			}
			b, _ := s.world.Bullets.Get(bullet)
			if !near(b.Traveled, 3*p.BulletSpeed) {
				t.Errorf("Traveled = %v, expected %v", b.Traveled, 3*p.BulletSpeed)
			}
		})
	}
}

func TestBulletHitsOnlyOneAsteroid(t *testing.T) {
	s := newEmpty(DefaultParams())
	addShip(s, core.V2(-500, -300), core.Vec2{})
	addAsteroid(s, core.V2(0, 0), core.Vec2{}, SizeTiny)
	addAsteroid(s, core.V2(1, 0), core.Vec2{}, SizeTiny)
	addBullet(s, core.V2(0, 0), core.Vec2{})

	res := s.Tick(core.NewInputFrame())

	if s.Score() != 1 {
		t.Errorf("score = %d, expected 1", s.Score())
	}
	if s.world.Asteroids.Len() != 1 {
		t.Errorf("asteroids = %d, expected 1", s.world.Asteroids.Len())
	}
	if res.Transition != TransitionNone {
		t.Errorf("transition = %v, expected none", res.Transition)
	}
}

func TestAsteroidDestroyedOnce(t *testing.T) {
	s := newEmpty(DefaultParams())
	addAsteroid(s, core.V2(0, 0), core.Vec2{}, SizeSmall)
	addBullet(s, core.V2(0, 0), core.Vec2{})
	addBullet(s, core.V2(1, 0), core.Vec2{})

	s.Tick(core.NewInputFrame())

	if s.Score() != 1 {
		t.Errorf("score = %d, expected 1", s.Score())
	}
	if got := s.world.Bullets.Len(); got != 1 {
		t.Errorf("bullets = %d, expected 1 surviving bullet", got)
	}
	if got := s.world.Asteroids.Len(); got != 2 {
		t.Errorf("asteroids = %d, expected 2 children", got)
	}
}

func TestScoreMonotonic(t *testing.T) {
	s := New(DefaultParams(), 99)
	s.Start()

	in := core.NewInputFrame()
	var last uint64
	for i := 0; i < 600; i++ {
		in.Clear()
		in.Hold(core.ActionRotateLeft)
		if i%10 == 0 {
			in.Set(core.ActionFire)
		}
		res := s.Tick(in)
		if res.Score < last {
			t.Fatalf("score went down: %d -> %d", last, res.Score)
		}
		last = res.Score
		if res.Transition != TransitionNone {
			break
		}
	}
}

func TestStartSpawnsFieldAwayFromShip(t *testing.T) {
	p := DefaultParams()
	s := New(p, 42)
	s.Start()

	if _, ok := s.world.ShipEntity(); !ok {
		t.Fatal("Start should spawn the ship")
	}
	if got := s.world.Asteroids.Len(); got != p.AsteroidCount {
		t.Fatalf("asteroids = %d, expected %d", got, p.AsteroidCount)
	}
	for _, e := range s.world.Asteroids.Entities() {
		a, _ := s.world.Asteroids.Get(e)
		if a.Size != SizeLarge {
			t.Errorf("initial asteroid size = %v, expected large", a.Size)
		}
		pos, _ := s.world.Positions.Get(e)
		if pos.Length() < p.SafeRadius {
			t.Errorf("asteroid at %+v is inside the safe radius", pos)
		}
		vel, _ := s.world.Velocities.Get(e)
		if !near(vel.Length(), p.AsteroidSpeed) {
			t.Errorf("asteroid speed = %v, expected %v", vel.Length(), p.AsteroidSpeed)
		}
	}
	if s.Wave() != 1 {
		t.Errorf("Wave() = %d, expected 1", s.Wave())
	}
}

func TestNextWave(t *testing.T) {
	p := DefaultParams()
	s := New(p, 3)
	s.Start()
	s.world.Arena.Clear()
	s.score = 5

	s.NextWave()

	if _, ok := s.world.ShipEntity(); !ok {
		t.Error("NextWave should respawn a missing ship")
	}
	want := p.AsteroidCount + p.WaveGrowth
	if got := s.world.Asteroids.Len(); got != want {
		t.Errorf("asteroids = %d, expected %d", got, want)
	}
	if s.Score() != 5 {
		t.Errorf("score = %d, NextWave must keep the score", s.Score())
	}
	if s.Wave() != 2 {
		t.Errorf("Wave() = %d, expected 2", s.Wave())
	}
}

func TestClear(t *testing.T) {
	s := New(DefaultParams(), 3)
	s.Start()
	s.Tick(core.NewInputFrame())
	s.Clear()

	if s.world.Arena.Len() != 0 {
		t.Errorf("arena has %d entities after Clear", s.world.Arena.Len())
	}
	if s.Score() != 0 || s.Stats().Ticks != 0 {
		t.Error("Clear should reset score and stats")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() uint64 {
		s := New(DefaultParams(), 12345)
		s.Start()
		in := core.NewInputFrame()
		for i := 0; i < 400; i++ {
			in.Clear()
			switch {
			case i%50 < 10:
				in.Hold(core.ActionRotateLeft)
			case i%50 < 20:
				in.Hold(core.ActionThrust)
			}
			if i%7 == 0 {
				in.Set(core.ActionFire)
			}
			s.Tick(in)
		}
		snap := s.Snapshot()
		return snap.Hash()
	}

	if h1, h2 := run(), run(); h1 != h2 {
		t.Errorf("hash mismatch: %d vs %d", h1, h2)
	}
}

func TestSnapshotReflectsWorld(t *testing.T) {
	s := newEmpty(DefaultParams())
	addShip(s, core.V2(1, 2), core.Vec2{})
	addAsteroid(s, core.V2(300, 200), core.Vec2{}, SizeMedium)
	addBullet(s, core.V2(-300, 0), core.V2(0, 8))

	snap := s.Snapshot()
	if snap.Ship == nil || snap.Ship.X != 1 || snap.Ship.Y != 2 {
		t.Errorf("ship snapshot = %+v", snap.Ship)
	}
	if len(snap.Asteroids) != 1 || snap.Asteroids[0].Size != SizeMedium {
		t.Errorf("asteroid snapshot = %+v", snap.Asteroids)
	}
	if len(snap.Bullets) != 1 || snap.Bullets[0].VY != 8 {
		t.Errorf("bullet snapshot = %+v", snap.Bullets)
	}

	before := snap.Hash()
	s.Tick(core.NewInputFrame())
	after := s.Snapshot()
	if after.Hash() == before {
		t.Error("hash should change after a tick moves the bullet")
	}
}

func TestSizeSmaller(t *testing.T) {
	tests := []struct {
		in     Size
		want   Size
		wantOK bool
	}{
		{SizeLarge, SizeMedium, true},
		{SizeMedium, SizeSmall, true},
		{SizeSmall, SizeTiny, true},
		{SizeTiny, SizeTiny, false},
	}
	for _, tt := range tests {
		got, ok := tt.in.Smaller()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("%v.Smaller() = (%v, %v), expected (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseDistanceMode(t *testing.T) {
	if ParseDistanceMode("spawn") != DistanceFromSpawn {
		t.Error("spawn should parse to DistanceFromSpawn")
	}
	if ParseDistanceMode("arc") != DistanceArc || ParseDistanceMode("") != DistanceArc {
		t.Error("arc and unknown names should parse to DistanceArc")
	}
}
