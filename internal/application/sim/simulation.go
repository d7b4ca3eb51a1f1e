// Package sim runs many characters over one stage on a fixed timestep.
// Each character is a donburi entity carrying a Character component.
package sim

import (
	"slices"

	"github.com/yohamta/donburi"

	"github.com/younwookim/slopewalk/internal/application/system"
	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
	"github.com/younwookim/slopewalk/internal/infrastructure/config"
)

// Character is the component holding one simulated character
type Character struct {
	Name       string
	Body       *system.CharacterBody2D
	Controller Controller
	Snapshot   system.Snapshot
	Animation  AnimationState
}

var CharacterComponent = donburi.NewComponentType[Character]()

// Simulation ticks characters sequentially in spawn order
type Simulation struct {
	world  donburi.World
	order  []donburi.Entity
	cfg    *config.CharacterConfig
	caster system.Caster
	matrix system.MaskLookup
	clock  *FixedClock
	tick   int
}

// New creates a simulation sharing caster and matrix between characters
func New(cfg *config.CharacterConfig, caster system.Caster, matrix system.MaskLookup) *Simulation {
	return &Simulation{
		world:  donburi.NewWorld(),
		cfg:    cfg,
		caster: caster,
		matrix: matrix,
		clock:  NewFixedClock(cfg.Physics.Framerate, DefaultMaxSteps),
	}
}

// Spawn adds a character at position driven by ctrl
func (s *Simulation) Spawn(name string, body entity.ProbeShape, position geom.Vec2, ctrl Controller) donburi.Entity {
	if ctrl == nil {
		ctrl = Idle
	}
	b := system.NewCharacterBody2D(s.cfg, s.caster, s.matrix, body, position)

	e := s.world.Create(CharacterComponent)
	CharacterComponent.Set(s.world.Entry(e), &Character{
		Name:       name,
		Body:       b,
		Controller: ctrl,
		Snapshot:   b.Snapshot(),
	})
	s.order = append(s.order, e)
	return e
}

// Remove deletes a character
func (s *Simulation) Remove(e donburi.Entity) {
	if !s.world.Valid(e) {
		return
	}
	s.world.Remove(e)
	s.order = slices.DeleteFunc(s.order, func(o donburi.Entity) bool { return o == e })
}

// Character returns the component of e, or nil if e is gone
func (s *Simulation) Character(e donburi.Entity) *Character {
	if !s.world.Valid(e) {
		return nil
	}
	return CharacterComponent.Get(s.world.Entry(e))
}

// Each calls fn for every character in spawn order
func (s *Simulation) Each(fn func(e donburi.Entity, c *Character)) {
	for _, e := range s.order {
		fn(e, CharacterComponent.Get(s.world.Entry(e)))
	}
}

// Len returns the number of characters
func (s *Simulation) Len() int {
	return len(s.order)
}

// Step runs one fixed tick for every character
func (s *Simulation) Step() {
	dt := s.clock.Step
	s.Each(func(_ donburi.Entity, c *Character) {
		system.Apply(c.Body, c.Controller.Intents(s.tick, c.Snapshot)...)
		c.Body.Tick(dt)
		c.Snapshot = c.Body.Snapshot()
		c.Animation = c.Animation.Next(c.Snapshot.HorizontalSpeedRatio, c.Snapshot.Grounded)
	})
	s.tick++
}

// Advance runs as many ticks as elapsed seconds allow and returns the count
func (s *Simulation) Advance(elapsed float64) int {
	n := s.clock.Advance(elapsed)
	for i := 0; i < n; i++ {
		s.Step()
	}
	return n
}

// Run steps until every finite controller is done or maxTicks is reached
func (s *Simulation) Run(maxTicks int, onTick func(tick int)) int {
	ran := 0
	for ran < maxTicks && !s.Done() {
		s.Step()
		ran++
		if onTick != nil {
			onTick(s.tick)
		}
	}
	return ran
}

// Done reports whether every controller has run out of input.
// A simulation with any open-ended controller is never done.
func (s *Simulation) Done() bool {
	if len(s.order) == 0 {
		return true
	}
	done := true
	s.Each(func(_ donburi.Entity, c *Character) {
		f, ok := c.Controller.(Finite)
		if !ok || !f.Done() {
			done = false
		}
	})
	return done
}

// Tick returns the number of ticks run so far
func (s *Simulation) Tick() int {
	return s.tick
}

// Clock returns the fixed clock
func (s *Simulation) Clock() *FixedClock {
	return s.clock
}

// World returns the donburi world
func (s *Simulation) World() donburi.World {
	return s.world
}
