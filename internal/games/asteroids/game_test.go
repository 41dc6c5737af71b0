package asteroids

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		Seed:     12345,
		ScreenW:  120,
		ScreenH:  40,
		TickRate: 60,
	}
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func newStarted(t *testing.T, g *Game) {
	t.Helper()
	g.Reset(testRuntime())
	g.Step(press(core.ActionFire))
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v after launch, expected playing", g.Phase())
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDClassic, IDEndless} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestReadyWaitsForLaunch(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	if g.Phase() != PhaseReady {
		t.Fatalf("phase = %v, expected ready", g.Phase())
	}
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Sim().World().Arena.Len() != 0 {
		t.Error("no entities should exist before launch")
	}

	g.Step(press(core.ActionFire))
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v, expected playing", g.Phase())
	}
	if _, ok := g.Sim().World().ShipEntity(); !ok {
		t.Error("launch should spawn the ship")
	}
}

func TestPauseToggle(t *testing.T) {
	g := New()
	newStarted(t, g)

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused after pause press")
	}

	before := g.Sim().Snapshot()
	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}
	after := g.Sim().Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("simulation should not advance while paused")
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("expected unpaused after second pause press")
	}
}

// runUntilOver plays a spinning, firing ship until the round ends.
func runUntilOver(g *Game, maxTicks int) []core.Cue {
	var cues []core.Cue
	in := core.NewInputFrame()
	for i := 0; i < maxTicks && !g.State().GameOver; i++ {
		in.Clear()
		in.Hold(core.ActionRotateLeft)
		if i%4 == 0 {
			in.Set(core.ActionFire)
		}
		res := g.Step(in)
		cues = append(cues, res.Cues...)
	}
	return cues
}

func TestLossEmitsCues(t *testing.T) {
	g := New()
	newStarted(t, g)

	// Drop a large rock on the ship.
	w := g.Sim().World()
	for _, e := range w.Asteroids.Entities() {
		w.Positions.Set(e, core.V2(0, 0))
		w.Velocities.Set(e, core.Vec2{})
		break
	}

	res := g.Step(core.NewInputFrame())
	if g.Phase() != PhaseLost {
		t.Fatalf("phase = %v, expected lost", g.Phase())
	}
	st := g.State()
	if !st.GameOver || st.Won {
		t.Errorf("state = %+v, expected game over without win", st)
	}

	var ship, loss bool
	for _, c := range res.Cues {
		ship = ship || c == core.CueShipDestroyed
		loss = loss || c == core.CueLoss
	}
	if !ship || !loss {
		t.Errorf("cues = %v, expected ship-destroyed and loss", res.Cues)
	}

	if sum := g.Summary(); sum.Outcome != "lost" {
		t.Errorf("summary outcome = %q, expected lost", sum.Outcome)
	}

	// Game over ignores further input until reset.
	g.Step(press(core.ActionFire))
	if g.Phase() != PhaseLost {
		t.Error("lost round should stay lost")
	}
}

// clearField removes every asteroid but one tiny rock sitting on a fresh bullet.
func clearField(g *Game) {
	w := g.Sim().World()
	for i, e := range w.Asteroids.Entities() {
		if i == 0 {
			w.Asteroids.Set(e, sim.Asteroid{Size: sim.SizeTiny})
			w.Positions.Set(e, core.V2(0, 100))
			w.Velocities.Set(e, core.Vec2{})
			continue
		}
		w.Arena.Despawn(e)
	}
}

func TestClassicWin(t *testing.T) {
	g := New()
	newStarted(t, g)
	clearField(g)

	// Ship faces up; a shot reaches (0, 100) in well under 20 ticks.
	var cues []core.Cue
	res := g.Step(press(core.ActionFire))
	cues = append(cues, res.Cues...)
	for i := 0; i < 30 && !g.State().GameOver; i++ {
		res = g.Step(core.NewInputFrame())
		cues = append(cues, res.Cues...)
	}

	if g.Phase() != PhaseWon {
		t.Fatalf("phase = %v, expected won", g.Phase())
	}
	if !g.State().Won {
		t.Error("State().Won should be set")
	}
	if g.State().Score != 1 {
		t.Errorf("score = %d, expected 1", g.State().Score)
	}
	found := false
	for _, c := range cues {
		found = found || c == core.CueVictory
	}
	if !found {
		t.Errorf("cues = %v, expected victory", cues)
	}
	if g.Summary().Outcome != "won" {
		t.Errorf("summary outcome = %q, expected won", g.Summary().Outcome)
	}
}

func TestEndlessStartsNextWave(t *testing.T) {
	g := NewEndless()
	newStarted(t, g)
	clearField(g)

	g.Step(press(core.ActionFire))
	for i := 0; i < 30 && g.Sim().Wave() == 1; i++ {
		g.Step(core.NewInputFrame())
	}

	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, endless mode should keep playing", g.Phase())
	}
	if g.Sim().Wave() != 2 {
		t.Fatalf("wave = %d, expected 2", g.Sim().Wave())
	}
	p := g.Sim().Params()
	if got := g.Sim().World().Asteroids.Len(); got != p.AsteroidCount+p.WaveGrowth {
		t.Errorf("asteroids = %d, expected %d", got, p.AsteroidCount+p.WaveGrowth)
	}
	if g.State().Score != 1 {
		t.Errorf("score = %d, expected 1 carried into the next wave", g.State().Score)
	}
}

func TestResetReturnsToReady(t *testing.T) {
	g := New()
	newStarted(t, g)
	runUntilOver(g, 100)

	g.Reset(testRuntime())
	if g.Phase() != PhaseReady {
		t.Errorf("phase = %v, expected ready", g.Phase())
	}
	if g.State().Score != 0 {
		t.Errorf("score = %d, expected 0 after reset", g.State().Score)
	}
	if g.Summary().Outcome != "abandoned" {
		t.Errorf("outcome = %q, expected abandoned", g.Summary().Outcome)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() uint64 {
		g := New()
		g.Reset(testRuntime())
		g.Step(press(core.ActionFire))
		runUntilOver(g, 500)
		snap := g.Sim().Snapshot()
		return snap.Hash()
	}
	if h1, h2 := run(), run(); h1 != h2 {
		t.Errorf("hash mismatch: %d vs %d", h1, h2)
	}
}

func TestShipGlyph(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '▲'},
		{math.Pi / 2, '◀'},
		{math.Pi, '▼'},
		{-math.Pi / 2, '▶'},
		{2 * math.Pi, '▲'},
		{math.Pi / 4, '◤'},
		{0.1, '▲'},
	}
	for _, tt := range tests {
		if got := ShipGlyph(tt.heading); got != tt.want {
			t.Errorf("ShipGlyph(%v) = %q, expected %q", tt.heading, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	screen := core.NewScreen(120, 40)

	g.Render(screen)
	if !strings.Contains(screen.String(), "Press SPACE to launch") {
		t.Error("ready screen should show the launch prompt")
	}

	g.Step(press(core.ActionFire))
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q, expected score", screen.Row(0))
	}
	if !strings.ContainsRune(out, '▲') {
		t.Error("ship glyph should be drawn")
	}
	if !strings.ContainsRune(out, RockRimChar) {
		t.Error("asteroids should be drawn")
	}

	// The ship sits at the arena center.
	x, y := newViewport(g.Sim().Bounds(), screen).cell(core.Vec2{})
	if screen.GetCell(x, y).Rune != '▲' {
		t.Errorf("cell (%d,%d) = %q, expected ship", x, y, screen.GetCell(x, y).Rune)
	}
}

func TestViewportMapping(t *testing.T) {
	screen := core.NewScreen(120, 41)
	vp := newViewport(sim.NewBounds(1200, 640), screen)

	tests := []struct {
		p      core.Vec2
		wx, wy int
	}{
		{core.V2(-600, 320), 0, hudHeight},
		{core.V2(0, 0), 60, hudHeight + 20},
		{core.V2(599, -319), 119, hudHeight + 39},
	}
	for _, tt := range tests {
		x, y := vp.cell(tt.p)
		if x != tt.wx || y != tt.wy {
			t.Errorf("cell(%+v) = (%d,%d), expected (%d,%d)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
}

func TestParamsFromConfig(t *testing.T) {
	p := ParamsFromConfig(config.DefaultAsteroidsConfig())
	want := sim.DefaultParams()

	if math.Abs(p.RotationStep-want.RotationStep) > 1e-12 {
		t.Errorf("RotationStep = %v, expected %v", p.RotationStep, want.RotationStep)
	}
	p.RotationStep = want.RotationStep
	if p != want {
		t.Errorf("default config should map to default params:\n%+v\n%+v", p, want)
	}
}
