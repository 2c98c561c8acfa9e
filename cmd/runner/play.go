package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/runner-arcade/internal/core"
	"github.com/vovakirdan/runner-arcade/internal/games/runner"
	"github.com/vovakirdan/runner-arcade/internal/platform/tui"
	"github.com/vovakirdan/runner-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant in the terminal",
	Long: `Start playing the given runner variant in the terminal.

Controls:
  Space/Up/W - Start, then jump
  R          - Restart (after game over)
  Q/Esc      - Quit

Difficulty options:
  easy   - Slower scroll, obstacles further apart
  normal - Config as loaded
  hard   - Faster scroll, more obstacles, steeper ramp
  fixed  - Speed never ramps up

Examples:
  runner play runner
  runner play runner_endless --difficulty hard
  runner play runner --config ./my-runner.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// terminalConfig sizes the scene to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	variant := args[0]
	mustVariant(variant)

	preset, err := parseDifficulty(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	// Surface config errors here; the game itself falls back to defaults
	if _, err := loadVariantConfig(variant, flagConfig, preset); err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}

	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(string(preset))

	runErr := playTerminal(variant, terminalConfig(), logger)
	closeLog()

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

// playTerminal runs one variant until the user quits and prints the last score.
func playTerminal(variant string, cfg core.RuntimeConfig, logger *log.Logger) error {
	game, err := registry.Create(variant)
	if err != nil {
		return err
	}

	state, err := tui.Run(game, cfg, logger)
	if err != nil {
		return err
	}
	if state.Started {
		fmt.Printf("%s: final score %d\n", game.Title(), state.Score)
	}
	return nil
}
