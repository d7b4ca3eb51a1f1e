package sim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/younwookim/slopewalk/internal/application/replay"
	"github.com/younwookim/slopewalk/internal/application/system"
	"github.com/younwookim/slopewalk/internal/domain/geom"
)

// Controller decides a character's intents before each tick.
// last is the snapshot published by the previous tick.
type Controller interface {
	Intents(tick int, last system.Snapshot) []system.Intent
}

// Finite is a controller that runs out of input
type Finite interface {
	Done() bool
}

// ControllerFunc adapts a function to Controller
type ControllerFunc func(tick int, last system.Snapshot) []system.Intent

func (f ControllerFunc) Intents(tick int, last system.Snapshot) []system.Intent {
	return f(tick, last)
}

// Idle never moves
var Idle = ControllerFunc(func(int, system.Snapshot) []system.Intent { return nil })

// ScriptStep holds a force for a number of frames.
// Velocity, when set, is applied once on the step's first frame.
type ScriptStep struct {
	Frames   int
	Force    geom.Vec2
	Velocity *geom.Vec2
}

// Scripted plays a fixed list of steps
type Scripted struct {
	steps []ScriptStep
	loop  bool
	idx   int
	frame int
}

// NewScripted creates a scripted controller; a looping script never finishes
func NewScripted(loop bool, steps ...ScriptStep) *Scripted {
	return &Scripted{steps: steps, loop: loop}
}

func (s *Scripted) Intents(int, system.Snapshot) []system.Intent {
	if s.Done() {
		return nil
	}

	step := s.steps[s.idx]
	var intents []system.Intent
	if s.frame == 0 && step.Velocity != nil {
		intents = append(intents, system.VelocityIntent{Velocity: *step.Velocity})
	}
	intents = append(intents, system.ForceIntent{Force: step.Force})

	s.frame++
	if s.frame >= step.Frames {
		s.frame = 0
		s.idx++
		if s.loop && s.idx == len(s.steps) {
			s.idx = 0
		}
	}
	return intents
}

// Done reports whether the script has played every step
func (s *Scripted) Done() bool {
	return s.idx >= len(s.steps)
}

// ParseScript reads a comma separated script such as "R60,RJ1,N30,L45".
// Letters: L left, R right, J jump, N nothing. The number is the frame
// count and defaults to 1.
func ParseScript(script string) ([]ScriptStep, error) {
	var steps []ScriptStep
	for _, tok := range strings.Split(script, ",") {
		tok = strings.TrimSpace(strings.ToUpper(tok))
		if tok == "" {
			continue
		}

		i := strings.IndexFunc(tok, func(r rune) bool { return r >= '0' && r <= '9' })
		keys, count := tok, "1"
		if i >= 0 {
			keys, count = tok[:i], tok[i:]
		}
		frames, err := strconv.Atoi(count)
		if err != nil || frames <= 0 {
			return nil, fmt.Errorf("invalid frame count in %q", tok)
		}

		var in system.InputState
		for _, k := range keys {
			switch k {
			case 'L':
				in.Left = true
			case 'R':
				in.Right = true
			case 'J':
				in.Jump = true
			case 'N':
			default:
				return nil, fmt.Errorf("unknown key %q in %q", k, tok)
			}
		}
		steps = append(steps, ScriptStep{Frames: frames, Force: system.ForceFromInput(in)})
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("empty script")
	}
	return steps, nil
}

// ReplayController plays recorded frames
type ReplayController struct {
	replayer *replay.Replayer
}

// NewReplayController creates a controller playing data from the start
func NewReplayController(data replay.ReplayData) *ReplayController {
	return &ReplayController{replayer: replay.NewReplayer(data)}
}

func (c *ReplayController) Intents(int, system.Snapshot) []system.Intent {
	intents, _ := c.replayer.Next()
	return intents
}

// Done reports whether every recorded frame has been played
func (c *ReplayController) Done() bool {
	return c.replayer.Done()
}

// Replayer exposes the underlying replayer, for progress display
func (c *ReplayController) Replayer() *replay.Replayer {
	return c.replayer
}
