package engine

import (
	"math"

	"github.com/vovakirdan/runner-arcade/internal/config"
	"github.com/vovakirdan/runner-arcade/internal/core"
)

// PlayerBody is the runner: a box under constant gravity that can only
// jump while standing on the floor.
type PlayerBody struct {
	core.Box
	VelocityY   float64
	Gravity     float64
	JumpImpulse float64

	floor       float64
	restEpsilon float64
}

// NewPlayerBody creates a body resting on the floor.
func NewPlayerBody(pc config.PlayerConfig, phys config.Physics, floor float64) PlayerBody {
	p := PlayerBody{
		Box:         core.NewBox(pc.X, 0, pc.Width, pc.Height),
		Gravity:     phys.Gravity,
		JumpImpulse: phys.JumpImpulse,
		floor:       floor,
		restEpsilon: phys.RestEpsilon,
	}
	p.Land()
	return p
}

// Land puts the body on the floor with no vertical velocity.
func (p *PlayerBody) Land() {
	p.Y = p.floor - p.H
	p.VelocityY = 0
}

// Integrate advances the body by one fixed step.
func (p *PlayerBody) Integrate() {
	p.VelocityY += p.Gravity
	p.Y += p.VelocityY

	if p.Bottom() > p.floor {
		p.Land()
	}
}

// Resting reports whether the body stands on the floor.
//
// With a zero epsilon the check is exact. Land writes exactly floor-H, so
// the comparison holds after every landing; positions reached any other
// way (e.g. a descent that happens to stop a hair above the floor) do not
// count. A positive epsilon accepts anything within that distance.
func (p *PlayerBody) Resting() bool {
	if p.restEpsilon == 0 {
		return p.Y == p.floor-p.H
	}
	return math.Abs(p.Y-(p.floor-p.H)) <= p.restEpsilon
}

// Jump applies the jump impulse if the body is resting.
// It returns whether the jump happened; airborne jumps leave velocity untouched.
func (p *PlayerBody) Jump() bool {
	if !p.Resting() {
		return false
	}
	p.VelocityY = -p.JumpImpulse
	return true
}
