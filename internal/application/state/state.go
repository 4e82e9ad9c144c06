package state

// SandboxState represents what the sandbox scene is doing
type SandboxState int

const (
	StateRunning SandboxState = iota
	StatePaused
	StateReplaying
	StateReplayDone
)

// String returns the string representation of the sandbox state
func (s SandboxState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateReplaying:
		return "Replaying"
	case StateReplayDone:
		return "ReplayDone"
	default:
		return "Unknown"
	}
}

// Advances reports whether the simulation steps on its own in this state
func (s SandboxState) Advances() bool {
	return s == StateRunning || s == StateReplaying
}
