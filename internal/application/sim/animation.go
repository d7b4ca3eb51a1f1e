package sim

import "math"

const (
	movingThreshold = 0.02
	flipThreshold   = 0.01
)

// AnimationState is what a sprite needs from the physics
type AnimationState struct {
	Moving   bool
	FlipX    bool // facing left
	OnGround bool
}

// Next derives the animation state from the horizontal speed ratio.
// Facing only changes while moving, so the sprite keeps its last direction
// when the character stops.
func (a AnimationState) Next(ratio float64, grounded bool) AnimationState {
	next := AnimationState{FlipX: a.FlipX, OnGround: grounded}
	if math.Abs(ratio) > movingThreshold {
		next.Moving = true
		if ratio < -flipThreshold {
			next.FlipX = true
		} else if ratio > flipThreshold {
			next.FlipX = false
		}
	}
	return next
}
