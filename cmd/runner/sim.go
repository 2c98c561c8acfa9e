package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runner-arcade/internal/sim"
)

var (
	flagFrames  uint64
	flagLead    float64
	flagVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim <variant>",
	Short: "Run a headless session with the autopilot",
	Long: `Simulate one session without a display. The autopilot jumps when the
nearest obstacle is --lead frames away; --lead 0 never jumps.

Examples:
  runner sim runner
  runner sim runner_endless --frames 18000 --verbose
  runner sim runner --difficulty hard --lead 10`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simCmd.Flags().Uint64Var(&flagFrames, "frames", sim.DefaultMaxFrames, "Stop after this many frames")
	simCmd.Flags().Float64Var(&flagLead, "lead", sim.DefaultAutopilot().LeadFrames, "Autopilot lead in frames")
	simCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log progress every simulated second")
}

func runSim(_ *cobra.Command, args []string) {
	variant := args[0]
	mustVariant(variant)

	preset, err := parseDifficulty(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	cfg, err := loadVariantConfig(variant, flagConfig, preset)
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()
	if !flagVerbose && flagLogFile == "" {
		logger.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := sim.Run(ctx, cfg, sim.Options{
		TickRate:  flagFPS,
		MaxFrames: flagFrames,
		Pilot:     sim.Autopilot{LeadFrames: flagLead},
		Logger:    logger,
	})
	if err != nil {
		stop()
		closeLog()
		fail("%v", err)
	}

	end := res.EndReason.String()
	if !res.Ended() {
		end = "frame limit"
	}
	fmt.Printf("variant:  %s\n", variant)
	fmt.Printf("session:  %s\n", res.SessionID)
	fmt.Printf("ended:    %s\n", end)
	fmt.Printf("frames:   %d (%.1fs)\n", res.Frames, res.SimTime.Seconds())
	fmt.Printf("score:    %d\n", res.Score)
	fmt.Printf("jumps:    %d\n", res.Jumps)
	fmt.Printf("speed:    %.2f\n", res.Speed)
}
