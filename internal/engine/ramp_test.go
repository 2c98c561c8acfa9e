package engine

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/runner-arcade/internal/config"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSecondRamp(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Session.TimeLimitSec = 3
	r := NewRamp(cfg)
	r.Reset(0)

	if r.Speed() != 3 {
		t.Fatalf("initial speed = %v, expected 3", r.Speed())
	}
	if rem := r.Remaining(); !rem.HasTime || rem.Seconds != 3 || rem.HasDistance {
		t.Fatalf("initial remaining = %+v", rem)
	}

	if reason := r.Update(999 * time.Millisecond); reason != EndNone || r.Speed() != 3 {
		t.Errorf("nothing should change before a full second, speed %v reason %v", r.Speed(), reason)
	}

	r.Update(time.Second)
	if !almostEqual(r.Speed(), 3.1) || r.Remaining().Seconds != 2 {
		t.Errorf("after 1s: speed %v, left %d", r.Speed(), r.Remaining().Seconds)
	}

	// The next step is measured from the frame that crossed the second
	r.Update(1990 * time.Millisecond)
	if r.Remaining().Seconds != 2 {
		t.Errorf("step fired early, left %d", r.Remaining().Seconds)
	}

	r.Update(2 * time.Second)
	if reason := r.Update(3 * time.Second); reason != EndTimeUp {
		t.Errorf("countdown should expire, got %v", reason)
	}
	if r.Remaining().Seconds != 0 {
		t.Errorf("left = %d, expected 0", r.Remaining().Seconds)
	}
}

func TestSecondRampCapAndNoLimit(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Session.TimeLimitSec = 0
	cfg.Ramp.MaxSpeed = 3.15
	r := NewRamp(cfg)
	r.Reset(0)

	for s := 1; s <= 5; s++ {
		if reason := r.Update(time.Duration(s) * time.Second); reason != EndNone {
			t.Fatalf("no limit configured, got %v", reason)
		}
	}
	if r.Speed() != 3.15 {
		t.Errorf("speed = %v, expected cap 3.15", r.Speed())
	}
	if r.Remaining().HasTime {
		t.Error("no time limit should be reported")
	}
}

func TestFrameRamp(t *testing.T) {
	cfg := config.DefaultEndlessConfig()
	cfg.Ramp.FrameDelta = 0.5
	cfg.Ramp.MaxSpeed = 4
	cfg.Session.DistanceLimit = 18
	r := NewRamp(cfg)
	r.Reset(0)

	speeds := []float64{3.5, 4, 4, 4}
	for i, want := range speeds {
		reason := r.Update(0)
		if r.Speed() != want {
			t.Errorf("frame %d: speed %v, expected %v", i, r.Speed(), want)
		}
		// travelled: 3.5, 7.5, 11.5, 15.5
		if reason != EndNone {
			t.Fatalf("frame %d: unexpected end %v", i, reason)
		}
	}
	if rem := r.Remaining(); !rem.HasDistance || rem.Distance != 2.5 {
		t.Errorf("remaining = %+v, expected 2.5 distance", rem)
	}
	if reason := r.Update(0); reason != EndDistance {
		t.Errorf("distance countdown should expire, got %v", reason)
	}
	if r.Remaining().Distance != 0 {
		t.Errorf("remaining distance should clamp at 0, got %v", r.Remaining().Distance)
	}

	r.Reset(0)
	if r.Speed() != 3 || r.Remaining().Distance != 18 {
		t.Errorf("Reset should restore speed and distance, got %v / %v", r.Speed(), r.Remaining().Distance)
	}
}

func TestRampSpeedNeverDecreases(t *testing.T) {
	for _, cfg := range []config.RunnerConfig{config.DefaultRunnerConfig(), config.DefaultEndlessConfig()} {
		t.Run(string(cfg.Ramp.Policy), func(t *testing.T) {
			cfg.Session.TimeLimitSec = 0
			r := NewRamp(cfg)
			r.Reset(0)
			prev := r.Speed()
			for f := 1; f <= 10000; f++ {
				r.Update(time.Duration(f) * 16 * time.Millisecond)
				if r.Speed() < prev {
					t.Fatalf("frame %d: speed dropped from %v to %v", f, prev, r.Speed())
				}
				if cfg.Ramp.MaxSpeed > 0 && r.Speed() > cfg.Ramp.MaxSpeed {
					t.Fatalf("frame %d: speed %v above cap", f, r.Speed())
				}
				prev = r.Speed()
			}
		})
	}
}
