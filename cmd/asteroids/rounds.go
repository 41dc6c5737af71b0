package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

var flagRoundsLimit int

var roundsCmd = &cobra.Command{
	Use:   "rounds [game]",
	Short: "Show the round journal",
	Long: `Display recent rounds and totals from the journal.
Without a game ID every game is shown.

Examples:
  asteroids rounds
  asteroids rounds asteroids_endless --limit 25`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRounds,
}

func init() {
	roundsCmd.Flags().IntVar(&flagRoundsLimit, "limit", 10, "Number of rounds to show")
}

func runRounds(_ *cobra.Command, args []string) error {
	gameID := ""
	title := "All games"
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown game %q", gameID)
		}
		game, err := registry.Create(gameID)
		if err != nil {
			return err
		}
		title = game.Title()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	rounds, err := store.RecentRounds(gameID, flagRoundsLimit)
	if err != nil {
		return err
	}
	stats, err := store.RoundStats(gameID)
	if err != nil {
		return err
	}

	fmt.Printf("Round journal - %s\n", title)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Run 'asteroids play' and finish a round to start the journal.")
		return nil
	}

	// Print header
	fmt.Printf("  %-5s  %-18s  %-9s  %4s  %5s  %4s  %7s  %s\n",
		"#", "Game", "Outcome", "Wave", "Shots", "Hits", "Time", "Date")
	fmt.Printf("  %-5s  %-18s  %-9s  %4s  %5s  %4s  %7s  %s\n",
		"-", "----", "-------", "----", "-----", "----", "----", "----")

	for _, r := range rounds {
		fmt.Printf("  %-5d  %-18s  %-9s  %4d  %5d  %4d  %7s  %s\n",
			r.ID, r.GameID, r.Outcome, r.Wave, r.ShotsFired, r.AsteroidsDestroyed,
			playTime(r.Ticks), r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Rounds: %d  Won: %d  Lost: %d  Accuracy: %.1f%%  Played: %s\n",
		stats.Rounds, stats.Wins, stats.Losses, 100*stats.Accuracy(), playTime(stats.Ticks))
	return nil
}

// playTime converts ticks at the --fps rate to a duration.
func playTime(ticks int) time.Duration {
	rate := flagFPS
	if rate <= 0 {
		rate = 60
	}
	return (time.Duration(ticks) * time.Second / time.Duration(rate)).Round(time.Second)
}
