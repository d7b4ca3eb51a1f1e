package system

import "github.com/younwookim/slopewalk/internal/domain/geom"

// InputState holds the current input state
type InputState struct {
	Left  bool
	Right bool
	Jump  bool
	// Playground controls, edge triggered
	Pause     bool
	Step      bool
	Reset     bool
	Record    bool
	NextLayer bool
}

// ForceFromInput maps held keys to the force handed to SetForce.
// Opposite keys cancel; a held jump key keeps requesting a jump.
func ForceFromInput(in InputState) geom.Vec2 {
	var f geom.Vec2
	if in.Left {
		f.X--
	}
	if in.Right {
		f.X++
	}
	if in.Jump {
		f.Y = 1
	}
	return f
}

// IntentsFromInput converts input into the intents for one tick
func IntentsFromInput(in InputState) []Intent {
	return []Intent{ForceIntent{Force: ForceFromInput(in)}}
}
