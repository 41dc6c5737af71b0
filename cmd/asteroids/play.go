package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/audio"
	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
	"github.com/vovakirdan/tui-asteroids/internal/logging"
	"github.com/vovakirdan/tui-asteroids/internal/platform/tui"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

var flagEndless bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round right away.

Controls:
  Left/A, Right/D  - Rotate
  Up/W             - Thrust
  Space            - Fire (also launches the round)
  P/Esc            - Pause
  R                - Restart (after the round ends)
  B                - Leave (title card, pause or round over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Terminals report key repeats but not releases: a turn or thrust key counts
as held until --hold-ticks ticks pass without a repeat.

Difficulty options:
  easy   - Fewer, slower asteroids; progression on
  normal - Reference field; progression on
  hard   - More, faster asteroids; progression on
  fixed  - No progression (the default config's behavior)

Examples:
  asteroids play
  asteroids play --endless
  asteroids play --difficulty hard
  asteroids play --config ./my-asteroids.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Clearing the field starts the next wave")
}

// setupSession routes logs to the log file, opens the journal and the audio
// device. The returned cleanup releases all three.
func setupSession() (*storage.Store, audio.Player, func()) {
	var logCloser io.Closer
	if path := config.UserPath("asteroids.log"); path != "" {
		_, closer, err := logging.SetupFile(path, flagLogLevel, "asteroids")
		if err != nil {
			log.Warn("logging to file disabled", "err", err)
		} else {
			logCloser = closer
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open journal database", "err", err)
		// Continue without storage - game still works
		store = nil
	}

	cfg, err := config.LoadAsteroids(flagConfig)
	if err != nil {
		log.Warn("using default audio settings", "err", err)
		cfg = config.DefaultAsteroidsConfig()
	}
	player := audio.NewPlayer(cfg.Audio)

	return store, player, func() {
		player.Close()
		if store != nil {
			store.Close()
		}
		if logCloser != nil {
			logCloser.Close()
		}
	}
}

func runPlay(_ *cobra.Command, _ []string) error {
	applyGameFlags()

	gameID := asteroids.IDClassic
	if flagEndless {
		gameID = asteroids.IDEndless
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, player, cleanup := setupSession()
	defer cleanup()

	if err := tui.Run(game, store, player, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
