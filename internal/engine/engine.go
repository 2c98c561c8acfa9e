// Package engine implements the endless-runner simulation: player physics,
// time-gated spawning, AABB collisions and the session state machine.
//
// The engine never schedules anything itself. A host calls Tick once per
// frame with a monotonic timestamp and draws the returned Snapshot.
package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/runner-arcade/internal/config"
)

var (
	// ErrInvalidPlayfield is returned by New for a non-positive or non-finite extent.
	ErrInvalidPlayfield = errors.New("engine: invalid playfield")
	// ErrClockRegressed is returned by Tick when the timestamp goes backwards.
	ErrClockRegressed = errors.New("engine: clock regressed")
)

// Playfield is the simulation area. Entities scroll from Width to 0 and
// the floor is the bottom edge.
type Playfield struct {
	Width  float64
	Height float64
}

// Floor returns the y-coordinate of the floor.
func (p Playfield) Floor() float64 {
	return p.Height
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes session lifecycle logs to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine is a single runner session advanced one frame at a time.
// It is not safe for concurrent use; one host goroutine owns it.
type Engine struct {
	cfg     config.RunnerConfig
	field   Playfield
	logger  *log.Logger
	player  PlayerBody
	spawner *SpawnManager
	ramp    Ramp
	machine StateMachine

	sessionID string
	score     int
	frame     uint64

	lastTick time.Duration
	ticked   bool // a timestamp has been seen
	armed    bool // Start was called; timers baseline at the next tick
}

// New creates an engine in StateNotStarted.
func New(cfg config.RunnerConfig, field Playfield, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !config.Finite(field.Width) || !config.Finite(field.Height) || field.Width <= 0 || field.Height <= 0 {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidPlayfield, field.Width, field.Height)
	}
	if cfg.Player.Height > field.Height || cfg.Player.X+cfg.Player.Width > field.Width {
		return nil, fmt.Errorf("%w: player %vx%v at x=%v does not fit %vx%v", ErrInvalidPlayfield,
			cfg.Player.Width, cfg.Player.Height, cfg.Player.X, field.Width, field.Height)
	}

	e := &Engine{
		cfg:    cfg,
		field:  field,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset()
	return e, nil
}

// Reset discards the current session and returns to StateNotStarted.
// Hosts use it in place of rebuilding the engine after game over.
func (e *Engine) Reset() {
	e.player = NewPlayerBody(e.cfg.Player, e.cfg.Physics, e.field.Floor())
	e.spawner = NewSpawnManager(e.cfg.Obstacles, e.cfg.Collectibles, e.field)
	e.ramp = NewRamp(e.cfg)
	e.ramp.Reset(0)
	e.machine.Rewind()
	e.sessionID = ""
	e.score = 0
	e.frame = 0
	e.armed = false
}

// Start begins a new session: score 0, no entities, base speed, full
// countdown and the player on the floor. Timers are anchored to the
// timestamp of the next Tick.
func (e *Engine) Start() {
	e.player.Land()
	e.spawner.Reset(e.lastTick)
	e.ramp.Reset(e.lastTick)
	e.score = 0
	e.frame = 0
	e.armed = true
	e.sessionID = uuid.NewString()
	e.machine.Start()

	e.logger.Debug("session started", "session", e.sessionID, "policy", e.cfg.Ramp.Policy)
}

// End finishes the session. Calling it again, or after the session
// already ended, has no effect.
func (e *Engine) End() {
	e.finish(EndManual)
}

func (e *Engine) finish(reason EndReason) {
	if !e.machine.End(reason) {
		return
	}
	e.logger.Debug("session ended",
		"session", e.sessionID,
		"reason", reason,
		"score", e.score,
		"frame", e.frame,
		"rejected", e.spawner.Rejected(),
	)
}

// PrimaryAction handles the single input: it starts the session if it has
// not started yet and otherwise attempts a jump. It is a no-op once over.
func (e *Engine) PrimaryAction() {
	switch e.machine.State() {
	case StateNotStarted:
		e.Start()
	case StateRunning:
		e.player.Jump()
	}
}

// Jump attempts a jump and reports whether it was honored.
func (e *Engine) Jump() bool {
	if e.machine.State() != StateRunning {
		return false
	}
	return e.player.Jump()
}

// Tick advances the simulation to now and returns the resulting snapshot.
// Ticks before Start and after game over only record the timestamp.
func (e *Engine) Tick(now time.Duration) (Snapshot, error) {
	if e.ticked && now < e.lastTick {
		return e.Snapshot(), fmt.Errorf("%w: %v after %v", ErrClockRegressed, now, e.lastTick)
	}
	e.lastTick = now
	e.ticked = true

	if e.machine.State() != StateRunning {
		return e.Snapshot(), nil
	}

	if e.armed {
		e.spawner.Reset(now)
		e.ramp.Reset(now)
		e.armed = false
	}
	e.frame++

	if reason := e.ramp.Update(now); reason != EndNone {
		e.finish(reason)
		return e.Snapshot(), nil
	}

	if report := e.spawner.Spawn(now); report.Rejected {
		e.logger.Debug("collectible rejected", "session", e.sessionID, "frame", e.frame)
	}

	e.player.Integrate()
	e.spawner.Advance(e.ramp.Speed())

	res := CheckCollisions(e.player.Box, e.spawner.Obstacles(), e.spawner.Collectibles())
	if res.ObstacleHit {
		hit := e.spawner.Obstacles()[res.ObstacleIndex]
		e.logger.Debug("obstacle hit", "session", e.sessionID, "obstacle", hit.ID, "x", hit.X)
		e.finish(EndCollision)
		return e.Snapshot(), nil
	}
	if len(res.Collected) > 0 {
		e.score += len(res.Collected)
		e.spawner.RemoveCollectibles(res.Collected)
	}

	return e.Snapshot(), nil
}

// Snapshot returns the current render state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		SessionID:    e.sessionID,
		State:        e.machine.State(),
		EndReason:    e.machine.Reason(),
		Frame:        e.frame,
		Playfield:    e.field,
		Player:       e.player.Box,
		Obstacles:    append([]Entity(nil), e.spawner.Obstacles()...),
		Collectibles: append([]Entity(nil), e.spawner.Collectibles()...),
		Score:        e.score,
		Speed:        e.ramp.Speed(),
		Remaining:    e.ramp.Remaining(),
	}
}

// State returns the current session state.
func (e *Engine) State() State {
	return e.machine.State()
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.RunnerConfig {
	return e.cfg
}
