package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/replay"
)

var (
	flagScript string
	flagRender bool
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Replay an input script without a terminal UI",
	Long: `Run a game headlessly from a YAML input script and print the final
state and locomotion statistics. Use --log-level debug to see every
landing, jump, crouch and flip as it happens.

Script format:
  seed: 42
  steps:
    - ticks: 60        # hold this input for 60 ticks
      move: 1          # -1..1
    - ticks: 1
      jump: true       # pressed on the first tick of the step only
    - ticks: 30
      crouch: true

Examples:
  platformer sim platformer --script run.yaml
  platformer sim runner --script bot.yaml --render --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagScript, "script", "", "Path to input script YAML (required)")
	simCmd.Flags().BoolVar(&flagRender, "render", false, "Print the final frame")
	simCmd.MarkFlagRequired("script") //nolint:errcheck // Flag is defined above
}

func runSim(_ *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		os.Exit(1)
	}

	logger := mustLogger(false)
	applyGameFlags(flagConfig, flagDifficulty, flagAirControl)

	script, err := replay.Load(flagScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = script.Seed
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	game.Reset(cfg)

	ticks := 0
	state := game.State()
	for _, frame := range script.Frames() {
		if state.GameOver {
			break
		}
		state = game.Step(frame).State
		ticks++
	}
	logger.Debug("replay finished", "game", gameID, "ticks", ticks, "of", script.TotalTicks())

	if flagRender {
		screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		game.Render(screen)
		fmt.Println(screen.String())
		fmt.Println()
	}

	fmt.Printf("Game:      %s\n", game.Title())
	fmt.Printf("Ticks:     %d/%d\n", ticks, script.TotalTicks())
	fmt.Printf("Score:     %d\n", state.Score)
	fmt.Printf("Game over: %v\n", state.GameOver)
	if stats, ok := registry.StatsOf(game); ok {
		fmt.Printf("Jumps: %d  Landings: %d  Crouches: %d  Flips: %d\n",
			stats.Jumps, stats.Landings, stats.Crouches, stats.Flips)
	}
}
