package engine

import (
	"math"
	"time"

	"github.com/vovakirdan/runner-arcade/internal/config"
)

// Remaining is the countdown shown to the player.
type Remaining struct {
	Seconds     int     // Whole seconds left, valid when HasTime
	Distance    float64 // Scene units left, valid when HasDistance
	HasTime     bool
	HasDistance bool
}

// Ramp owns the scroll speed and the session countdown.
// Speed never decreases between Reset calls.
type Ramp interface {
	// Reset restores the base speed and restarts the countdown at now.
	Reset(now time.Duration)
	// Update advances the ramp to now. It returns EndNone unless the
	// countdown just expired.
	Update(now time.Duration) EndReason
	// Speed returns the current scroll speed in scene units per frame.
	Speed() float64
	// Remaining returns the countdown state.
	Remaining() Remaining
}

// NewRamp builds the ramp selected by cfg.Ramp.Policy.
func NewRamp(cfg config.RunnerConfig) Ramp {
	if cfg.Ramp.Policy == config.RampPerFrame {
		return &frameRamp{
			base:  cfg.Physics.BaseSpeed,
			delta: cfg.Ramp.FrameDelta,
			max:   cfg.Ramp.MaxSpeed,
			limit: cfg.Session.DistanceLimit,
		}
	}
	return &secondRamp{
		base:  cfg.Physics.BaseSpeed,
		step:  cfg.Ramp.Step,
		max:   cfg.Ramp.MaxSpeed,
		limit: cfg.Session.TimeLimitSec,
	}
}

// capSpeed applies an optional upper bound; zero means uncapped.
func capSpeed(speed, max float64) float64 {
	if max > 0 {
		return math.Min(speed, max)
	}
	return speed
}

// secondRamp decrements the time left once per elapsed second and bumps
// the speed by a fixed step on each of those ticks.
type secondRamp struct {
	base  float64
	step  float64
	max   float64
	limit int

	speed      float64
	timeLeft   int
	lastUpdate time.Duration
}

func (r *secondRamp) Reset(now time.Duration) {
	r.speed = r.base
	r.timeLeft = r.limit
	r.lastUpdate = now
}

func (r *secondRamp) Update(now time.Duration) EndReason {
	if now-r.lastUpdate >= time.Second {
		// Anchored to the frame that crossed the second, not to a fixed grid
		r.lastUpdate = now
		r.speed = capSpeed(r.speed+r.step, r.max)
		if r.limit > 0 {
			r.timeLeft--
		}
	}

	if r.limit > 0 && r.timeLeft <= 0 {
		return EndTimeUp
	}
	return EndNone
}

func (r *secondRamp) Speed() float64 {
	return r.speed
}

func (r *secondRamp) Remaining() Remaining {
	return Remaining{Seconds: r.timeLeft, HasTime: r.limit > 0}
}

// frameRamp adds a small delta every frame, clamped to a maximum, and
// counts the distance travelled against an optional limit.
type frameRamp struct {
	base  float64
	delta float64
	max   float64
	limit float64

	speed     float64
	travelled float64
}

func (r *frameRamp) Reset(time.Duration) {
	r.speed = r.base
	r.travelled = 0
}

func (r *frameRamp) Update(time.Duration) EndReason {
	r.speed = capSpeed(r.speed+r.delta, r.max)
	r.travelled += r.speed

	if r.limit > 0 && r.travelled >= r.limit {
		return EndDistance
	}
	return EndNone
}

func (r *frameRamp) Speed() float64 {
	return r.speed
}

func (r *frameRamp) Remaining() Remaining {
	left := 0.0
	if r.limit > 0 {
		left = math.Max(r.limit-r.travelled, 0)
	}
	return Remaining{Distance: left, HasDistance: r.limit > 0}
}
