package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runner-arcade/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config <variant>",
	Short: "Print the effective YAML config",
	Long: `Print the configuration a session of the variant would use, after the
search order (--config, ~/.arcade/configs, ./configs, built-in default)
and the difficulty preset. The output is a valid config file.

Examples:
  runner config runner > ~/.arcade/configs/runner.yaml
  runner config runner_endless --difficulty hard`,
	Args: cobra.ExactArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runConfig(_ *cobra.Command, args []string) {
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

	out, err := config.Marshal(cfg)
	if err != nil {
		fail("%v", err)
	}
	os.Stdout.Write(out)
}
