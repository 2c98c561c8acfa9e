package engine

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/runner-arcade/internal/config"
	"github.com/vovakirdan/runner-arcade/internal/core"
)

const frame = 16 * time.Millisecond

// quietConfig never spawns and never ramps, so tests place entities by hand.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.CooldownMS = 3_600_000
	cfg.Collectibles.CooldownMS = 3_600_000
	cfg.Ramp.Step = 0
	cfg.Session.TimeLimitSec = 0
	return cfg
}

func newTestEngine(t *testing.T, cfg config.RunnerConfig, opts ...Option) *Engine {
	t.Helper()
	e, err := New(cfg, testField, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return e
}

// startedEngine returns a running engine whose timers are anchored at t=0.
func startedEngine(t *testing.T, cfg config.RunnerConfig) *Engine {
	t.Helper()
	e := newTestEngine(t, cfg)
	e.Start()
	if _, err := e.Tick(0); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestNewRejectsInvalidInput(t *testing.T) {
	if _, err := New(config.DefaultRunnerConfig(), Playfield{Width: 0, Height: 600}); !errors.Is(err, ErrInvalidPlayfield) {
		t.Errorf("zero width should fail with ErrInvalidPlayfield, got %v", err)
	}
	if _, err := New(config.DefaultRunnerConfig(), Playfield{Width: 800, Height: 50}); !errors.Is(err, ErrInvalidPlayfield) {
		t.Errorf("player taller than the playfield should fail, got %v", err)
	}
	for _, field := range []Playfield{
		{Width: 800, Height: math.NaN()},
		{Width: math.NaN(), Height: 600},
		{Width: math.Inf(1), Height: 600},
		{Width: 800, Height: math.Inf(1)},
	} {
		if _, err := New(config.DefaultRunnerConfig(), field); !errors.Is(err, ErrInvalidPlayfield) {
			t.Errorf("playfield %vx%v should fail with ErrInvalidPlayfield, got %v", field.Width, field.Height, err)
		}
	}

	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.Height = -1
	if _, err := New(cfg, testField); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("negative obstacle height should fail with ErrInvalidConfig, got %v", err)
	}

	cfg = config.DefaultRunnerConfig()
	cfg.Obstacles.FloorOffset = math.NaN()
	if _, err := New(cfg, testField); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("NaN obstacle offset should fail with ErrInvalidConfig, got %v", err)
	}
}

func TestTicksIgnoredBeforeStart(t *testing.T) {
	e := newTestEngine(t, config.DefaultRunnerConfig())

	for i := 1; i <= 200; i++ {
		snap, err := e.Tick(time.Duration(i) * frame)
		if err != nil {
			t.Fatal(err)
		}
		if snap.State != StateNotStarted || snap.Frame != 0 {
			t.Fatalf("tick before start advanced the session: %+v", snap)
		}
	}
	if e.Jump() {
		t.Error("jump before start should be ignored")
	}
	snap := e.Snapshot()
	if len(snap.Obstacles) != 0 || len(snap.Collectibles) != 0 || snap.SessionID != "" {
		t.Errorf("no session should exist yet: %+v", snap)
	}
}

func TestPrimaryActionStartsThenJumps(t *testing.T) {
	e := newTestEngine(t, quietConfig())

	e.PrimaryAction()
	if e.State() != StateRunning {
		t.Fatalf("first primary action should start the game, state %v", e.State())
	}
	if e.Snapshot().SessionID == "" {
		t.Error("started session should have an ID")
	}

	e.Tick(0)
	e.PrimaryAction()
	snap, _ := e.Tick(frame)
	if snap.Player.Y >= 540 {
		t.Errorf("second primary action should jump, player y %v", snap.Player.Y)
	}

	// Airborne: a further action leaves the arc unchanged
	vy := e.player.VelocityY
	e.PrimaryAction()
	if e.player.VelocityY != vy {
		t.Errorf("airborne primary action changed velocity from %v to %v", vy, e.player.VelocityY)
	}
}

func TestObstacleReachesPlayer(t *testing.T) {
	e := startedEngine(t, quietConfig())
	e.spawner.obstacles = append(e.spawner.obstacles,
		Entity{ID: 1000, Kind: KindObstacle, Box: core.NewBox(780, 570, 20, 20)})

	now := time.Duration(0)
	var snap Snapshot
	for i := 0; i < 30; i++ {
		now += frame
		snap, _ = e.Tick(now)
	}

	if snap.State != StateRunning {
		t.Fatalf("no collision expected after 30 frames, state %v", snap.State)
	}
	if got := snap.Obstacles[0].X; got != 690 {
		t.Fatalf("obstacle x after 30 frames = %v, expected 690", got)
	}

	for frames := 0; snap.State == StateRunning; frames++ {
		if frames > 1000 {
			t.Fatal("obstacle never hit the player")
		}
		now += frame
		snap, _ = e.Tick(now)
	}

	x := snap.Obstacles[0].X
	if x != 87 {
		t.Errorf("collision fired at obstacle x=%v, expected 87", x)
	}
	if x < 10 || x > 90 {
		t.Errorf("collision outside the player's span: x=%v", x)
	}
	if snap.EndReason != EndCollision || !snap.GameOver() {
		t.Errorf("expected game over by collision, got %v / %v", snap.State, snap.EndReason)
	}
}

func TestGameOverFreezesSession(t *testing.T) {
	e := startedEngine(t, quietConfig())
	e.spawner.obstacles = []Entity{
		{ID: 1, Kind: KindObstacle, Box: core.NewBox(60, 570, 20, 20)},
		{ID: 2, Kind: KindObstacle, Box: core.NewBox(500, 570, 20, 20)},
	}
	e.spawner.collectibles = []Entity{{ID: 3, Kind: KindCollectible, Box: core.NewBox(300, 585, 20, 20)}}

	over, _ := e.Tick(frame)
	if over.State != StateOver {
		t.Fatalf("overlap should end the game in the same tick, state %v", over.State)
	}

	e.PrimaryAction()
	if e.Jump() {
		t.Error("jump after game over should be ignored")
	}
	e.End()

	for i := 2; i < 50; i++ {
		snap, err := e.Tick(time.Duration(i) * frame)
		if err != nil {
			t.Fatal(err)
		}
		if snap.State != StateOver || snap.EndReason != EndCollision {
			t.Fatalf("state changed after game over: %v / %v", snap.State, snap.EndReason)
		}
		if snap.Score != over.Score || snap.Frame != over.Frame || snap.Player != over.Player {
			t.Fatalf("session advanced after game over")
		}
		if len(snap.Obstacles) != 2 || snap.Obstacles[1].X != over.Obstacles[1].X {
			t.Fatalf("obstacles moved after game over")
		}
		if len(snap.Collectibles) != 1 || snap.Collectibles[0].X != over.Collectibles[0].X {
			t.Fatalf("collectibles moved after game over")
		}
	}
}

func TestEndIsIdempotent(t *testing.T) {
	e := startedEngine(t, quietConfig())
	e.End()
	e.End()
	if e.State() != StateOver || e.Snapshot().EndReason != EndManual {
		t.Errorf("End should stop the session once, got %v / %v", e.State(), e.Snapshot().EndReason)
	}
}

func TestCollectiblePickup(t *testing.T) {
	e := startedEngine(t, quietConfig())
	e.spawner.obstacles = []Entity{{ID: 1, Kind: KindObstacle, Box: core.NewBox(400, 570, 20, 20)}}
	e.spawner.collectibles = []Entity{
		{ID: 2, Kind: KindCollectible, Box: core.NewBox(63, 585, 20, 20)},
		{ID: 3, Kind: KindCollectible, Box: core.NewBox(300, 585, 20, 20)},
	}

	snap, _ := e.Tick(frame)

	if snap.Score != 1 {
		t.Errorf("score = %d, expected 1", snap.Score)
	}
	if len(snap.Collectibles) != 1 || snap.Collectibles[0].ID != 3 {
		t.Errorf("only the touched collectible should be removed, got %+v", snap.Collectibles)
	}
	if len(snap.Obstacles) != 1 || snap.Obstacles[0].X != 397 {
		t.Errorf("obstacles must be unaffected by pickups, got %+v", snap.Obstacles)
	}
}

func TestSimultaneousPickups(t *testing.T) {
	e := startedEngine(t, quietConfig())
	e.spawner.collectibles = []Entity{
		{ID: 1, Kind: KindCollectible, Box: core.NewBox(63, 585, 20, 20)},
		{ID: 2, Kind: KindCollectible, Box: core.NewBox(70, 585, 20, 20)},
		{ID: 3, Kind: KindCollectible, Box: core.NewBox(83, 585, 20, 20)},
	}

	snap, _ := e.Tick(frame)

	if snap.Score != 3 || len(snap.Collectibles) != 0 {
		t.Errorf("all overlapping collectibles should be picked up, score %d left %d", snap.Score, len(snap.Collectibles))
	}
}

func TestStartResetsSession(t *testing.T) {
	e := newTestEngine(t, config.DefaultRunnerConfig())
	e.PrimaryAction()

	now := time.Duration(0)
	var snap Snapshot
	for i := 0; i < 1000; i++ {
		snap, _ = e.Tick(now)
		now += frame
		if snap.Score > 0 && len(snap.Obstacles) > 0 {
			break
		}
	}
	if snap.State != StateRunning || snap.Score == 0 {
		t.Fatalf("expected a running session with a score, got %v score %d", snap.State, snap.Score)
	}
	first := snap.SessionID

	assertFresh := func(label string) {
		t.Helper()
		s := e.Snapshot()
		if s.State != StateRunning || s.Score != 0 {
			t.Errorf("%s: state %v score %d", label, s.State, s.Score)
		}
		if len(s.Obstacles) != 0 || len(s.Collectibles) != 0 {
			t.Errorf("%s: stale entities %d/%d", label, len(s.Obstacles), len(s.Collectibles))
		}
		if s.Player.Bottom() != 600 {
			t.Errorf("%s: player not on the floor, bottom %v", label, s.Player.Bottom())
		}
		if s.Speed != 3 || s.Remaining.Seconds != 60 {
			t.Errorf("%s: ramp not reset, speed %v left %d", label, s.Speed, s.Remaining.Seconds)
		}
	}

	e.Jump()
	e.Start()
	assertFresh("restart while running")
	if e.Snapshot().SessionID == first {
		t.Error("restart should issue a new session ID")
	}

	// Nothing spawns on the first frame after a restart
	snap, _ = e.Tick(now)
	if len(snap.Obstacles) != 0 || len(snap.Collectibles) != 0 {
		t.Error("timers should be anchored at the first tick after Start")
	}

	e.End()
	e.Start()
	assertFresh("restart after game over")
}

func TestResetReturnsToNotStarted(t *testing.T) {
	e := startedEngine(t, config.DefaultRunnerConfig())
	for i := 1; i < 100; i++ {
		e.Tick(time.Duration(i) * frame)
	}

	e.Reset()
	snap := e.Snapshot()
	if snap.State != StateNotStarted || snap.Score != 0 || len(snap.Collectibles) != 0 || snap.SessionID != "" {
		t.Errorf("Reset should leave a fresh unstarted session, got %+v", snap)
	}
}

func TestTimeLimitEndsSession(t *testing.T) {
	cfg := quietConfig()
	cfg.Session.TimeLimitSec = 1
	e := startedEngine(t, cfg)

	if snap, _ := e.Tick(500 * time.Millisecond); snap.State != StateRunning {
		t.Fatalf("session ended early")
	}
	snap, _ := e.Tick(time.Second)
	if snap.State != StateOver || snap.EndReason != EndTimeUp {
		t.Errorf("expected time up, got %v / %v", snap.State, snap.EndReason)
	}
	if snap.Remaining.Seconds != 0 {
		t.Errorf("time left = %d, expected 0", snap.Remaining.Seconds)
	}
}

func TestDistanceLimitEndsSession(t *testing.T) {
	cfg := config.DefaultEndlessConfig()
	cfg.Obstacles.CooldownMS = 3_600_000
	cfg.Collectibles.CooldownMS = 3_600_000
	cfg.Ramp.FrameDelta = 0
	cfg.Session.DistanceLimit = 30
	e := newTestEngine(t, cfg)
	e.Start()

	var snap Snapshot
	for i := 0; i < 10; i++ {
		if snap.State == StateOver {
			t.Fatalf("ended after %d frames, expected 10", i)
		}
		snap, _ = e.Tick(time.Duration(i) * frame)
	}
	if snap.State != StateOver || snap.EndReason != EndDistance {
		t.Errorf("expected distance end after 10 frames, got %v / %v", snap.State, snap.EndReason)
	}
}

func TestClockRegressionRejected(t *testing.T) {
	e := startedEngine(t, quietConfig())
	before, _ := e.Tick(100 * time.Millisecond)

	snap, err := e.Tick(50 * time.Millisecond)
	if !errors.Is(err, ErrClockRegressed) {
		t.Fatalf("expected ErrClockRegressed, got %v", err)
	}
	if snap.Frame != before.Frame {
		t.Error("rejected tick must not advance the session")
	}

	// Equal timestamps are fine
	if _, err := e.Tick(100 * time.Millisecond); err != nil {
		t.Errorf("repeated timestamp should be accepted: %v", err)
	}
}

func TestRunInvariants(t *testing.T) {
	for _, variant := range []string{config.VariantTimed, config.VariantEndless} {
		t.Run(variant, func(t *testing.T) {
			cfg, _ := config.DefaultFor(variant)
			e := newTestEngine(t, cfg)
			e.PrimaryAction()

			prev := e.Snapshot()
			for i := 0; i < 5000 && prev.State == StateRunning; i++ {
				if i%45 == 0 {
					e.PrimaryAction()
				}
				snap, err := e.Tick(time.Duration(i) * frame)
				if err != nil {
					t.Fatal(err)
				}
				if snap.State == StateRunning && snap.Speed < prev.Speed {
					t.Fatalf("frame %d: speed dropped %v -> %v", i, prev.Speed, snap.Speed)
				}
				if snap.Player.Bottom() > snap.Playfield.Floor() {
					t.Fatalf("frame %d: player below floor", i)
				}
				if snap.Score < prev.Score {
					t.Fatalf("frame %d: score dropped %d -> %d", i, prev.Score, snap.Score)
				}
				for _, c := range snap.Collectibles {
					if c.W < 0 || c.H < 0 {
						t.Fatalf("negative size entity %+v", c)
					}
				}
				prev = snap
			}
		})
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e := startedEngine(t, quietConfig())
	e.spawner.obstacles = []Entity{{ID: 1, Kind: KindObstacle, Box: core.NewBox(400, 570, 20, 20)}}

	snap := e.Snapshot()
	snap.Obstacles[0].X = -500

	if e.spawner.Obstacles()[0].X != 400 {
		t.Error("mutating a snapshot must not affect the engine")
	}
}

func TestLoggerReceivesLifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	e := newTestEngine(t, quietConfig(), WithLogger(logger))
	e.Start()
	e.Tick(0)
	e.spawner.obstacles = []Entity{{ID: 1, Kind: KindObstacle, Box: core.NewBox(60, 570, 20, 20)}}
	e.Tick(frame)

	out := buf.String()
	if !strings.Contains(out, "session started") {
		t.Errorf("missing start log in %q", out)
	}
	if !strings.Contains(out, "session ended") || !strings.Contains(out, "collision") {
		t.Errorf("missing end log in %q", out)
	}
	if !strings.Contains(out, "obstacle hit") || !strings.Contains(out, "obstacle=1") {
		t.Errorf("missing obstacle id in %q", out)
	}
	if !strings.Contains(out, "rejected=0") {
		t.Errorf("missing rejected count in %q", out)
	}
}
