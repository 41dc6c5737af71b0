package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/platform/tui"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a round ends, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Round journal
  Q            - Quit

Examples:
  asteroids menu
  asteroids menu --fps 30
  asteroids menu --db ./journal.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	applyGameFlags()

	store, player, cleanup := setupSession()
	defer cleanup()

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsJournal {
			goBack, err := tui.RunJournal(store, cfg)
			if err != nil {
				return err
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from journal
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			log.Error("creating game", "game", menuResult.GameID, "err", err)
			continue
		}

		// Fresh seed per round unless one was pinned
		roundCfg := cfg
		if flagSeed == 0 {
			roundCfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, player, roundCfg); err != nil {
			return err
		}
	}
}
