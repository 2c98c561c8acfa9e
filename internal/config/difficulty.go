package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown or empty values
// return false and leave the config untouched.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
//
//   - easy slows the scroll and spaces obstacles further apart
//   - normal keeps the loaded values
//   - hard speeds the scroll up and spawns obstacles more often
//   - fixed disables the speed ramp entirely
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.BaseSpeed *= 0.8
		cfg.Obstacles.CooldownMS = cfg.Obstacles.CooldownMS * 13 / 10
	case DifficultyHard:
		cfg.Physics.BaseSpeed *= 1.3
		cfg.Obstacles.CooldownMS = cfg.Obstacles.CooldownMS * 3 / 4
		cfg.Ramp.Step *= 1.5
		cfg.Ramp.FrameDelta *= 1.5
	case DifficultyFixed:
		cfg.Ramp.Step = 0
		cfg.Ramp.FrameDelta = 0
	}

	// Keep the cap reachable after the base speed moved
	if cfg.Ramp.MaxSpeed > 0 && cfg.Ramp.MaxSpeed < cfg.Physics.BaseSpeed {
		cfg.Ramp.MaxSpeed = cfg.Physics.BaseSpeed
	}
	if cfg.Obstacles.CooldownMS < 1 {
		cfg.Obstacles.CooldownMS = 1
	}
}
