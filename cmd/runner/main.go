// runner is an endless-runner arcade for the terminal, a desktop window
// or a headless simulation.
//
// Usage:
//
//	runner list               - List runner variants
//	runner play <variant>     - Play in the terminal
//	runner menu               - Pick a variant and difficulty interactively
//	runner window <variant>   - Play in a window (or a browser when built for wasm)
//	runner sim <variant>      - Run a headless session with the autopilot
//	runner config <variant>   - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Tick rate for the terminal (default: 60)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Write logs to a file (terminal modes log nowhere otherwise)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/runner-arcade/internal/config"
	_ "github.com/vovakirdan/runner-arcade/internal/games/runner"
	"github.com/vovakirdan/runner-arcade/internal/registry"
)

var (
	flagFPS      int
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Runner Arcade - jump obstacles, grab coins",
	Long: `Runner Arcade is a side-scrolling runner: the player runs in place while
obstacles and coins scroll in from the right. Jump over obstacles, collect
coins, and survive until the clock runs out.

Available commands:
  list     - Show all runner variants
  play     - Play a variant in the terminal
  menu     - Interactive variant picker
  window   - Play in a desktop window
  sim      - Headless run with the autopilot
  config   - Print the effective YAML config

Examples:
  runner list
  runner play runner
  runner play runner_endless --difficulty hard
  runner window runner --config ./runner.yaml --watch
  runner sim runner --verbose`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger. Terminal modes pass io.Discard as
// fallback so logs never draw over the game; the others use stderr.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "runner",
	})
	return logger, closeFn, nil
}

// fail prints an error and exits, the way every command reports failures.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// mustVariant exits unless id names a registered variant.
func mustVariant(id string) {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available variants.")
		os.Exit(1)
	}
}

// parseDifficulty accepts an empty value as "use the config as loaded".
func parseDifficulty(s string) (config.DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	p, ok := config.ParsePreset(s)
	if !ok {
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
	return p, nil
}

// loadVariantConfig loads and validates what a session of variant will use.
func loadVariantConfig(variant, path string, preset config.DifficultyPreset) (config.RunnerConfig, error) {
	cfg, err := config.Load(variant, path)
	if err != nil {
		return cfg, err
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, cfg.Validate()
}
