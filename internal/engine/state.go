package engine

// State is the session lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// EndReason records why a session reached StateOver.
type EndReason int

const (
	EndNone      EndReason = iota
	EndCollision           // The player hit an obstacle
	EndTimeUp              // The time countdown reached zero
	EndDistance            // The distance countdown reached zero
	EndManual              // The host called End
)

// String returns a human-readable name for the reason.
func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndCollision:
		return "collision"
	case EndTimeUp:
		return "time_up"
	case EndDistance:
		return "distance"
	case EndManual:
		return "manual"
	default:
		return "unknown"
	}
}

// StateMachine tracks NotStarted -> Running -> Over.
type StateMachine struct {
	state  State
	reason EndReason
}

// State returns the current state.
func (m *StateMachine) State() State {
	return m.state
}

// Reason returns why the session ended, or EndNone.
func (m *StateMachine) Reason() EndReason {
	return m.reason
}

// Start enters Running from any state; a session started from Over is a new session.
func (m *StateMachine) Start() {
	m.state = StateRunning
	m.reason = EndNone
}

// End enters Over. Only the first call has an effect; it reports whether
// the state changed.
func (m *StateMachine) End(reason EndReason) bool {
	if m.state == StateOver {
		return false
	}
	m.state = StateOver
	m.reason = reason
	return true
}

// Rewind returns to NotStarted for a fresh session.
func (m *StateMachine) Rewind() {
	m.state = StateNotStarted
	m.reason = EndNone
}
