package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the embedded default configuration as YAML.

Save it to ~/.asteroids/configs/asteroids.yaml or ./configs/asteroids.yaml
and edit it; missing keys keep their defaults.

Examples:
  asteroids config > ~/.asteroids/configs/asteroids.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Print(string(config.DefaultYAML()))
	},
}
