package state

// GameState represents what the playground is doing with the simulation
type GameState int

const (
	StateRunning GameState = iota
	StatePaused
	StateReplaying
	StateReplayDone
)

// String returns the string representation of the game state
func (s GameState) String() string {
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

// Control is the pause and single-step state of the playground
type Control struct {
	state   GameState
	resume  GameState
	stepReq bool
}

// NewControl starts in initial
func NewControl(initial GameState) *Control {
	return &Control{state: initial, resume: initial}
}

// State returns the current state
func (c *Control) State() GameState {
	return c.state
}

// TogglePause pauses, or resumes the state that was paused
func (c *Control) TogglePause() {
	switch c.state {
	case StatePaused:
		c.state = c.resume
	case StateReplayDone:
	default:
		c.resume = c.state
		c.state = StatePaused
	}
}

// RequestStep asks for one tick while paused
func (c *Control) RequestStep() {
	if c.state == StatePaused {
		c.stepReq = true
	}
}

// ShouldTick reports whether the simulation advances this frame.
// A pending single step is consumed.
func (c *Control) ShouldTick() bool {
	switch c.state {
	case StateRunning, StateReplaying:
		return true
	case StatePaused:
		if c.stepReq {
			c.stepReq = false
			return true
		}
	}
	return false
}

// FinishReplay marks the replay as played out
func (c *Control) FinishReplay() {
	if c.state == StateReplaying || (c.state == StatePaused && c.resume == StateReplaying) {
		c.state = StateReplayDone
		c.stepReq = false
	}
}

// Reset returns to running
func (c *Control) Reset() {
	c.state = StateRunning
	c.resume = StateRunning
	c.stepReq = false
}
