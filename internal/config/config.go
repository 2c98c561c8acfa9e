// Package config provides YAML-based game configuration loading and
// difficulty presets for the runner arcade.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// RampPolicy selects how the scroll speed and the countdown evolve.
type RampPolicy string

const (
	// RampPerSecond decrements the time left once per elapsed second and
	// bumps the speed by a fixed step on each of those ticks.
	RampPerSecond RampPolicy = "per_second"
	// RampPerFrame adds a small delta to the speed every frame, clamped to
	// a maximum, and counts down travelled distance instead of time.
	RampPerFrame RampPolicy = "per_frame"
)

// RunnerConfig contains all configuration for a runner session.
type RunnerConfig struct {
	Physics      Physics           `yaml:"physics"`
	Player       PlayerConfig      `yaml:"player"`
	Obstacles    ObstacleConfig    `yaml:"obstacles"`
	Collectibles CollectibleConfig `yaml:"collectibles"`
	Ramp         RampConfig        `yaml:"ramp"`
	Session      SessionConfig     `yaml:"session"`
}

// Physics defines the player integration constants and the initial scroll speed.
type Physics struct {
	Gravity     float64 `yaml:"gravity"`      // Added to vertical velocity every frame
	JumpImpulse float64 `yaml:"jump_impulse"` // Upward speed applied by a jump
	BaseSpeed   float64 `yaml:"base_speed"`   // Scroll speed at session start
	RestEpsilon float64 `yaml:"rest_epsilon"` // 0 = exact floor contact required to jump
}

// PlayerConfig defines the runner's box. The runner always starts on the floor.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstacleConfig defines obstacle size, placement and spawn cadence.
type ObstacleConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	FloorOffset float64 `yaml:"floor_offset"` // Top edge sits this far above the floor
	CooldownMS  int     `yaml:"cooldown_ms"`
}

// CollectibleConfig defines collectible size, placement and spawn cadence.
type CollectibleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	FloorOffset  float64 `yaml:"floor_offset"`
	CooldownMS   int     `yaml:"cooldown_ms"`
	AvoidOverlap bool    `yaml:"avoid_overlap"` // Drop candidates that overlap a live obstacle
}

// RampConfig defines the speed ramp.
type RampConfig struct {
	Policy     RampPolicy `yaml:"policy"`
	Step       float64    `yaml:"step"`        // per_second: speed added each second
	FrameDelta float64    `yaml:"frame_delta"` // per_frame: speed added each frame
	MaxSpeed   float64    `yaml:"max_speed"`   // 0 = uncapped
}

// SessionConfig defines how a session ends besides an obstacle hit.
type SessionConfig struct {
	TimeLimitSec   int     `yaml:"time_limit_sec"` // per_second countdown, 0 = none
	DistanceLimit  float64 `yaml:"distance_limit"` // per_frame countdown, 0 = none
	RestartDelayMS int     `yaml:"restart_delay_ms"`
}

// Validate checks the config for values that would produce invalid geometry
// or a non-monotonic ramp.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	for _, f := range []struct {
		name string
		v    float64
	}{
		{"physics.gravity", c.Physics.Gravity},
		{"physics.jump_impulse", c.Physics.JumpImpulse},
		{"physics.base_speed", c.Physics.BaseSpeed},
		{"physics.rest_epsilon", c.Physics.RestEpsilon},
		{"player.x", c.Player.X},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"obstacles.width", c.Obstacles.Width},
		{"obstacles.height", c.Obstacles.Height},
		{"obstacles.floor_offset", c.Obstacles.FloorOffset},
		{"collectibles.width", c.Collectibles.Width},
		{"collectibles.height", c.Collectibles.Height},
		{"collectibles.floor_offset", c.Collectibles.FloorOffset},
		{"ramp.step", c.Ramp.Step},
		{"ramp.frame_delta", c.Ramp.FrameDelta},
		{"ramp.max_speed", c.Ramp.MaxSpeed},
		{"session.distance_limit", c.Session.DistanceLimit},
	} {
		check(Finite(f.v), "%s must be a finite number, got %v", f.name, f.v)
	}

	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.JumpImpulse >= 0, "physics.jump_impulse must not be negative, got %v", c.Physics.JumpImpulse)
	check(c.Physics.BaseSpeed >= 0, "physics.base_speed must not be negative, got %v", c.Physics.BaseSpeed)
	check(c.Physics.RestEpsilon >= 0, "physics.rest_epsilon must not be negative, got %v", c.Physics.RestEpsilon)

	check(c.Player.X >= 0, "player.x must not be negative, got %v", c.Player.X)
	check(c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive, got %vx%v", c.Player.Width, c.Player.Height)

	check(c.Obstacles.Width > 0 && c.Obstacles.Height > 0, "obstacle size must be positive, got %vx%v", c.Obstacles.Width, c.Obstacles.Height)
	check(c.Obstacles.CooldownMS > 0, "obstacles.cooldown_ms must be positive, got %d", c.Obstacles.CooldownMS)
	check(c.Collectibles.Width > 0 && c.Collectibles.Height > 0, "collectible size must be positive, got %vx%v", c.Collectibles.Width, c.Collectibles.Height)
	check(c.Collectibles.CooldownMS > 0, "collectibles.cooldown_ms must be positive, got %d", c.Collectibles.CooldownMS)

	switch c.Ramp.Policy {
	case RampPerSecond, RampPerFrame:
	default:
		check(false, "ramp.policy must be %q or %q, got %q", RampPerSecond, RampPerFrame, c.Ramp.Policy)
	}
	check(c.Ramp.Step >= 0, "ramp.step must not be negative, got %v", c.Ramp.Step)
	check(c.Ramp.FrameDelta >= 0, "ramp.frame_delta must not be negative, got %v", c.Ramp.FrameDelta)
	check(c.Ramp.MaxSpeed == 0 || c.Ramp.MaxSpeed >= c.Physics.BaseSpeed,
		"ramp.max_speed %v is below physics.base_speed %v", c.Ramp.MaxSpeed, c.Physics.BaseSpeed)

	check(c.Session.TimeLimitSec >= 0, "session.time_limit_sec must not be negative, got %d", c.Session.TimeLimitSec)
	check(c.Session.DistanceLimit >= 0, "session.distance_limit must not be negative, got %v", c.Session.DistanceLimit)
	check(c.Session.RestartDelayMS >= 0, "session.restart_delay_ms must not be negative, got %d", c.Session.RestartDelayMS)

	return errors.Join(errs...)
}

// Finite reports whether v is neither NaN nor an infinity.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
