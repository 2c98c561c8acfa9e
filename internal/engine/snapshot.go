package engine

import "github.com/vovakirdan/runner-arcade/internal/core"

// Snapshot is the render state published after every tick.
// Slices are copies; hosts may keep them across ticks.
type Snapshot struct {
	SessionID    string
	State        State
	EndReason    EndReason
	Frame        uint64
	Playfield    Playfield
	Player       core.Box
	Obstacles    []Entity
	Collectibles []Entity
	Score        int
	Speed        float64
	Remaining    Remaining
}

// GameOver reports whether the session has ended.
func (s Snapshot) GameOver() bool {
	return s.State == StateOver
}
