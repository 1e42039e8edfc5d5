package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagAirControl bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Left/Right, A/D  - Run
  Space/Up/W       - Jump
  Down/S           - Crouch (hold)
  P/Esc            - Pause
  R                - Restart (after game over)
  B                - Back (when paused or over)
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Air control, generous par time / slow obstacle ramp
  normal - Default settings
  hard   - Heavier gravity, short par time / fast obstacle ramp
  fixed  - No progression

Examples:
  platformer play platformer
  platformer play platformer --air-control
  platformer play runner --difficulty hard
  platformer play platformer --config ./my-level.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	for _, fs := range []*cobra.Command{playCmd, menuCmd, simCmd} {
		fs.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		fs.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		fs.Flags().BoolVar(&flagAirControl, "air-control", false, "Allow steering and crouching while airborne (platformer)")
	}
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available games.")
		os.Exit(1)
	}

	logger := mustLogger(true)
	applyGameFlags(flagConfig, flagDifficulty, flagAirControl)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig(), logger)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
