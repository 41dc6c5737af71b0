// asteroids is a terminal Asteroids game.
//
// Usage:
//
//	asteroids play           - Play a round (classic or --endless)
//	asteroids menu           - Start the interactive menu
//	asteroids serve          - Host the game over SSH
//	asteroids rounds         - Show the round journal
//	asteroids simulate       - Run the simulation headless
//	asteroids config         - Print the default configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set journal path (default: ~/.asteroids/journal.db)
//	--log-level <name>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagLogLevel  string
	flagHoldTicks int

	// Game flags shared by play, menu and simulate
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asteroids",
	Short: "Asteroids in your terminal",
	Long: `Fly a ship around a wrapping arena and shoot asteroids apart.
Large asteroids split into medium, medium into small, small into tiny.
Clear the field to win; touch an asteroid and the round is lost.

Available commands:
  play      - Play a round directly
  menu      - Interactive menu with the round journal
  serve     - Start SSH server for remote play
  rounds    - Print recent rounds and totals
  simulate  - Run rounds headless with a scripted pilot
  config    - Print the default configuration

Examples:
  asteroids play
  asteroids play --endless --difficulty hard
  asteroids menu
  asteroids serve --ssh :2222
  asteroids simulate --ticks 100000 --profile cpu`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to round journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from ASTEROIDS_LOG_LEVEL or info)")
	rootCmd.PersistentFlags().IntVar(&flagHoldTicks, "hold-ticks", core.DefaultConfig().HoldTicks, "Ticks a turn/thrust key stays held after its last key repeat")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// addGameFlags registers the config and difficulty flags on cmd.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyGameFlags hands the config and difficulty flags to the game package
// before any game instance is created.
func applyGameFlags() {
	asteroids.SetConfigPath(flagConfig)
	asteroids.SetDifficultyPreset(flagDifficulty)
}

// runtimeConfig builds the runtime config from global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.HoldTicks = flagHoldTicks
	return cfg
}
