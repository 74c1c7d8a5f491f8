package alsa

// State represents the lifecycle state of a Session.
type State uint32

const (
	// ClosedState indicates the session is not connected to the sequencer service
	// (initial and terminal state).
	ClosedState State = iota
	// IdleState indicates the session is connected to the sequencer service, but
	// not processing events.
	IdleState
	// RunningState indicates the session is processing incoming events.
	RunningState
)

// IsClosed returns if the current state is closed.
func (s State) IsClosed() bool { return s == ClosedState }

// IsIdle returns if the current state is idle.
func (s State) IsIdle() bool { return s == IdleState }

// IsRunning returns if the current state is running.
func (s State) IsRunning() bool { return s == RunningState }

// String returns string representation of the current state.
func (s State) String() string {
	switch s {
	case ClosedState:
		return "closed"
	case IdleState:
		return "idle"
	case RunningState:
		return "running"
	default:
		return "unknown"
	}
}
