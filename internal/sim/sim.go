// Package sim runs a runner session headless with a synthetic clock and
// a scripted autopilot. It backs the sim command and end-to-end tests.
package sim

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/runner-arcade/internal/config"
	"github.com/vovakirdan/runner-arcade/internal/engine"
)

// Defaults for Options fields left at zero.
const (
	DefaultTickRate  = 60
	DefaultMaxFrames = 10 * 60 * DefaultTickRate
)

// DefaultField is the playfield of the original browser canvas.
var DefaultField = engine.Playfield{Width: 800, Height: 600}

// Autopilot decides when to jump. It jumps once the nearest obstacle ahead
// is within LeadFrames frames of reaching the player. Zero never jumps.
type Autopilot struct {
	LeadFrames float64
}

// DefaultAutopilot clears the default obstacles at every reachable speed.
func DefaultAutopilot() Autopilot {
	return Autopilot{LeadFrames: 12}
}

// ShouldJump reports whether to press the primary action before the next frame.
func (a Autopilot) ShouldJump(s engine.Snapshot) bool {
	if a.LeadFrames <= 0 || s.State != engine.StateRunning {
		return false
	}
	lookahead := s.Speed * a.LeadFrames
	for _, o := range s.Obstacles {
		gap := o.X - s.Player.Right()
		if gap >= 0 && gap <= lookahead {
			return true
		}
	}
	return false
}

// Options configures a simulation run.
type Options struct {
	Field     engine.Playfield
	TickRate  int
	MaxFrames uint64
	Pilot     Autopilot
	Logger    *log.Logger
}

// Result summarizes a finished run.
type Result struct {
	SessionID string
	Frames    uint64
	Score     int
	Jumps     int
	Speed     float64
	EndReason engine.EndReason
	SimTime   time.Duration
}

// Ended reports whether the session finished before the frame budget.
func (r Result) Ended() bool {
	return r.EndReason != engine.EndNone
}

// Run plays one session to its end or to opts.MaxFrames.
func Run(ctx context.Context, cfg config.RunnerConfig, opts Options) (Result, error) {
	if opts.Field == (engine.Playfield{}) {
		opts.Field = DefaultField
	}
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.MaxFrames == 0 {
		opts.MaxFrames = DefaultMaxFrames
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	eng, err := engine.New(cfg, opts.Field, engine.WithLogger(logger))
	if err != nil {
		return Result{}, err
	}

	frame := time.Second / time.Duration(opts.TickRate)
	eng.Start()

	var (
		res  Result
		snap engine.Snapshot
		now  time.Duration
	)
	for snap.Frame < opts.MaxFrames {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if opts.Pilot.ShouldJump(snap) && eng.Jump() {
			res.Jumps++
		}
		snap, err = eng.Tick(now)
		if err != nil {
			return res, err
		}
		now += frame

		res.fill(snap, now)
		if snap.GameOver() {
			break
		}
		if snap.Frame%uint64(opts.TickRate) == 0 {
			logger.Info("progress", "frame", snap.Frame, "score", snap.Score, "speed", snap.Speed)
		}
	}
	return res, nil
}

func (r *Result) fill(s engine.Snapshot, now time.Duration) {
	r.SessionID = s.SessionID
	r.Frames = s.Frame
	r.Score = s.Score
	r.Speed = s.Speed
	r.EndReason = s.EndReason
	r.SimTime = now
}
