package config

import (
	_ "embed"
)

// Variant identifiers. They double as registry IDs and config file names.
const (
	VariantTimed   = "runner"
	VariantEndless = "runner_endless"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

//go:embed defaults/runner_endless.yaml
var defaultEndlessYAML []byte

// DefaultRunnerConfig returns the default timed runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: Physics{
			Gravity:     0.5,
			JumpImpulse: 12,
			BaseSpeed:   3,
		},
		Player: PlayerConfig{
			X:      50,
			Width:  40,
			Height: 60,
		},
		Obstacles: ObstacleConfig{
			Width:       20,
			Height:      20,
			FloorOffset: 30,
			CooldownMS:  1000,
		},
		Collectibles: CollectibleConfig{
			Width:       20,
			Height:      20,
			FloorOffset: 15,
			CooldownMS:  100,
		},
		Ramp: RampConfig{
			Policy: RampPerSecond,
			Step:   0.1,
		},
		Session: SessionConfig{
			TimeLimitSec:   60,
			RestartDelayMS: 1000,
		},
	}
}

// DefaultEndlessConfig returns the default endless runner configuration.
func DefaultEndlessConfig() RunnerConfig {
	cfg := DefaultRunnerConfig()
	cfg.Collectibles.AvoidOverlap = true
	cfg.Ramp = RampConfig{
		Policy:     RampPerFrame,
		FrameDelta: 0.001,
		MaxSpeed:   8,
	}
	cfg.Session.TimeLimitSec = 0
	return cfg
}

// DefaultFor returns the hard-coded default for a variant.
func DefaultFor(variant string) (RunnerConfig, bool) {
	switch variant {
	case VariantTimed:
		return DefaultRunnerConfig(), true
	case VariantEndless:
		return DefaultEndlessConfig(), true
	default:
		return RunnerConfig{}, false
	}
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	switch variant {
	case VariantTimed:
		return defaultRunnerYAML
	case VariantEndless:
		return defaultEndlessYAML
	default:
		return nil
	}
}
