package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// HoldTicks is how many ticks a continuous action stays held after its
	// last key event. Terminals report key repeats, not key releases.
	HoldTicks int
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer

		HoldTicks: 18,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the round has ended
	Won      bool   // Whether the round ended in victory (only meaningful with GameOver)
	Paused   bool   // Whether the game is paused
	Phase    string // Game-specific phase name for display/logging
}

// Cue is a discrete audio/visual event signalled by a game.
// The platform maps cues to sound playback; games never touch audio directly.
type Cue int

const (
	CueNone Cue = iota
	CueFire
	CueAsteroidDestroyed
	CueShipDestroyed
	CueVictory
	CueLoss
)

// String returns a human-readable cue name.
func (c Cue) String() string {
	switch c {
	case CueFire:
		return "fire"
	case CueAsteroidDestroyed:
		return "asteroid-destroyed"
	case CueShipDestroyed:
		return "ship-destroyed"
	case CueVictory:
		return "victory"
	case CueLoss:
		return "loss"
	default:
		return "none"
	}
}

// RoundSummary describes a finished round for the journal.
type RoundSummary struct {
	Outcome            string // "won", "lost" or "abandoned"
	Ticks              int
	ShotsFired         int
	AsteroidsDestroyed int
	Wave               int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any cues raised during the tick.
type StepResult struct {
	State GameState
	Cues  []Cue
}
