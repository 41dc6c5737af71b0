// Package asteroids adapts the asteroids simulation to the platform: it owns
// the round state machine, loads configuration and draws the arena into a
// character screen.
package asteroids

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
)

// Game IDs.
const (
	IDClassic = "asteroids"
	IDEndless = "asteroids_endless"
)

// Phase is the round state.
type Phase int

const (
	PhaseReady   Phase = iota // title card, waiting for launch
	PhasePlaying              // gameplay stages run every tick
	PhasePaused
	PhaseWon
	PhaseLost
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Mode selects what happens when the field is cleared.
type Mode string

const (
	ModeClassic Mode = "classic" // clearing the field wins the round
	ModeEndless Mode = "endless" // clearing the field starts the next wave
)

// Game implements registry.Game for Asteroids.
type Game struct {
	mode       Mode
	cfg        config.AsteroidsConfig
	sim        *sim.Simulation
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	phase      Phase
	playTicks  int
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select the
// config file's own difficulty settings.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// New creates a classic Asteroids game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewEndless creates an endless-waves Asteroids game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Asteroids (Endless)"
	}
	return "Asteroids"
}

// Reset loads configuration and returns to the title card. The previous
// round's entities are discarded.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadAsteroids(configPath)
	if err != nil {
		log.Warn("using default config", "err", err)
		cfg = config.DefaultAsteroidsConfig()
	}
	if difficultyPreset != "" {
		config.ApplyAsteroidsPreset(&cfg, difficultyPreset)
	}
	if err := cfg.Validate(); err != nil {
		log.Warn("invalid config, using defaults", "err", err)
		cfg = config.DefaultAsteroidsConfig()
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.sim = sim.New(ParamsFromConfig(cfg), seed)
	g.phase = PhaseReady
	g.playTicks = 0
}

// Step advances the round by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.phase {
	case PhaseReady:
		if in.Pressed(core.ActionFire) || in.Pressed(core.ActionConfirm) {
			g.launch()
		}
		return core.StepResult{State: g.State()}

	case PhaseWon, PhaseLost:
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Pressed(core.ActionPause) {
		if g.phase == PhasePaused {
			g.phase = PhasePlaying
		} else {
			g.phase = PhasePaused
		}
		log.Debug("pause toggled", "game", g.ID(), "phase", g.phase)
	}
	if g.phase == PhasePaused {
		return core.StepResult{State: g.State()}
	}

	g.playTicks++
	if g.difficulty.IsEnabled() {
		g.sim.SetAsteroidSpeed(g.difficulty.AsteroidSpeed(g.cfg.Asteroids.Speed, g.progress()))
	}

	res := g.sim.Tick(in)
	cues := res.Cues

	switch res.Transition {
	case sim.TransitionRoundLost:
		g.phase = PhaseLost
		cues = append(cues, core.CueLoss)
		log.Debug("round lost", "game", g.ID(), "score", res.Score, "tick", res.Tick)

	case sim.TransitionRoundWon:
		cues = append(cues, core.CueVictory)
		if g.mode == ModeEndless {
			g.sim.NextWave()
			log.Debug("wave cleared", "game", g.ID(), "wave", g.sim.Wave(), "score", res.Score)
		} else {
			g.phase = PhaseWon
			log.Debug("round won", "game", g.ID(), "score", res.Score, "tick", res.Tick)
		}
	}

	return core.StepResult{State: g.State(), Cues: cues}
}

// progress feeds the difficulty curve.
func (g *Game) progress() config.Progress {
	return config.Progress{Score: g.sim.Score(), Ticks: g.playTicks, Wave: g.sim.Wave()}
}

// launch enters active play: ship and initial field are spawned.
func (g *Game) launch() {
	g.sim.Start()
	g.phase = PhasePlaying
	g.playTicks = 0
	log.Debug("round started", "game", g.ID(), "asteroids", g.sim.World().Asteroids.Len())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	var score int
	if g.sim != nil {
		score = int(g.sim.Score()) //nolint:gosec // score fits in int
	}
	return core.GameState{
		Score:    score,
		GameOver: g.phase == PhaseWon || g.phase == PhaseLost,
		Won:      g.phase == PhaseWon,
		Paused:   g.phase == PhasePaused,
		Phase:    g.phase.String(),
	}
}

// Phase returns the round state.
func (g *Game) Phase() Phase {
	return g.phase
}

// Sim exposes the underlying simulation.
func (g *Game) Sim() *sim.Simulation {
	return g.sim
}

// Summary describes the current round for the journal. A round that has not
// ended is reported as abandoned.
func (g *Game) Summary() core.RoundSummary {
	outcome := "abandoned"
	switch g.phase {
	case PhaseWon:
		outcome = "won"
	case PhaseLost:
		outcome = "lost"
	}
	st := g.sim.Stats()
	return core.RoundSummary{
		Outcome:            outcome,
		Ticks:              st.Ticks,
		ShotsFired:         st.ShotsFired,
		AsteroidsDestroyed: st.AsteroidsDestroyed,
		Wave:               g.sim.Wave(),
	}
}

// String is a one-line status, used by headless runs.
func (g *Game) String() string {
	return fmt.Sprintf("%s phase=%s score=%d wave=%d asteroids=%d",
		g.ID(), g.phase, g.sim.Score(), g.sim.Wave(), g.sim.World().Asteroids.Len())
}
