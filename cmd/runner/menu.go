package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runner-arcade/internal/games/runner"
	"github.com/vovakirdan/runner-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant and difficulty interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a variant, left/right to change the
difficulty and Enter to play. Quitting a game returns to the menu.

Controls:
  Up/Down/j/k     - Navigate
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Play
  Q/Esc           - Quit

Examples:
  runner menu
  runner menu --fps 30
  runner menu --config ./runner.yaml`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	runner.SetConfigPath(flagConfig)
	cfg := terminalConfig()

	for {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = result.Config

		if result.Quit || result.GameID == "" {
			return
		}

		if _, err := loadVariantConfig(result.GameID, flagConfig, result.Preset); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		runner.SetDifficultyPreset(string(result.Preset))

		logger.Info("starting game", "variant", result.GameID, "difficulty", result.Preset)
		if err := playTerminal(result.GameID, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
	}
}
