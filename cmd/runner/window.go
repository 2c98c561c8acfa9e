package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runner-arcade/internal/platform/window"
	"github.com/vovakirdan/runner-arcade/internal/registry"
)

var (
	flagWatch  bool
	flagWidth  int
	flagHeight int
)

var windowCmd = &cobra.Command{
	Use:   "window <variant>",
	Short: "Play a variant in a desktop window",
	Long: `Open the runner in a window. Built with GOOS=js GOARCH=wasm the same
command runs in a browser canvas.

Controls:
  Space/Up/click/tap - Start, then jump
  Esc                - Quit

A finished session restarts by itself after session.restart_delay_ms.
With --watch, edits to the --config file are applied from the next session.

Examples:
  runner window runner
  runner window runner_endless --difficulty easy
  runner window runner --config ./runner.yaml --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	windowCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	windowCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
	windowCmd.Flags().IntVar(&flagWidth, "width", window.DefaultWidth, "Scene width in pixels")
	windowCmd.Flags().IntVar(&flagHeight, "height", window.DefaultHeight, "Scene height in pixels")
}

func runWindow(_ *cobra.Command, args []string) {
	variant := args[0]
	mustVariant(variant)

	preset, err := parseDifficulty(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	game, _ := registry.Create(variant)
	err = window.Run(window.Options{
		Variant:    variant,
		Title:      game.Title(),
		ConfigPath: flagConfig,
		Preset:     preset,
		Width:      flagWidth,
		Height:     flagHeight,
		Watch:      flagWatch,
		Logger:     logger,
	})
	if err != nil {
		closeLog()
		fail("%v", err)
	}
}
