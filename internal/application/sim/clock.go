package sim

import (
	"fmt"
	"math"
)

// DefaultMaxSteps bounds the catch-up ticks of one Advance call
const DefaultMaxSteps = 5

// FixedClock turns elapsed wall time into fixed physics ticks
type FixedClock struct {
	Step     float64 // seconds per tick
	MaxSteps int

	acc     float64
	dropped int
}

// NewFixedClock creates a clock ticking framerate times per second
func NewFixedClock(framerate, maxSteps int) *FixedClock {
	if framerate <= 0 {
		panic(fmt.Sprintf("sim: invalid framerate %d", framerate))
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &FixedClock{Step: 1 / float64(framerate), MaxSteps: maxSteps}
}

// Advance adds elapsed seconds and returns how many ticks to run.
// Backlog beyond MaxSteps is dropped rather than carried over.
func (c *FixedClock) Advance(elapsed float64) int {
	if elapsed > 0 {
		c.acc += elapsed
	}

	n := 0
	for c.acc >= c.Step && n < c.MaxSteps {
		c.acc -= c.Step
		n++
	}
	if c.acc >= c.Step {
		c.dropped += int(c.acc / c.Step)
		c.acc = math.Mod(c.acc, c.Step)
	}
	return n
}

// Alpha returns how far the clock is into the next tick, in [0, 1)
func (c *FixedClock) Alpha() float64 {
	return c.acc / c.Step
}

// Dropped returns the number of ticks skipped to stay real time
func (c *FixedClock) Dropped() int {
	return c.dropped
}

// Reset clears the accumulator
func (c *FixedClock) Reset() {
	c.acc = 0
	c.dropped = 0
}
