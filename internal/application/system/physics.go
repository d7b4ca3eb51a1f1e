package system

import (
	"fmt"
	"math"

	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
	"github.com/younwookim/slopewalk/internal/infrastructure/config"
)

// CharacterBody2D owns one character's physics state and runs its fixed tick:
// integrate -> ground probe -> positional correction -> swept move.
type CharacterBody2D struct {
	cfg    *config.CharacterConfig
	matrix MaskLookup

	state  entity.CharacterState
	probes entity.ProbeSet

	integrator *VelocityIntegrator
	tracker    *GroundTracker
	mover      *SweptMover

	force geom.Vec2 // pending input, consumed by the next tick
}

// Snapshot is the published per-tick view of a character
type Snapshot struct {
	Position             geom.Vec2    `json:"position"`
	Velocity             geom.Vec2    `json:"velocity"` // world space
	Rotation             float64      `json:"rotation"`
	Grounded             bool         `json:"grounded"`
	HorizontalSpeedRatio float64      `json:"horizontalSpeedRatio"`
	FacingRight          bool         `json:"facingRight"`
	Layer                entity.Layer `json:"layer"`
}

// NewCharacterBody2D creates a character at spawn.
// A nil matrix collides with every layer.
func NewCharacterBody2D(cfg *config.CharacterConfig, caster Caster, matrix MaskLookup, body entity.ProbeShape, spawn geom.Vec2) *CharacterBody2D {
	b := &CharacterBody2D{
		cfg:    cfg,
		matrix: matrix,
		state:  entity.NewCharacterState(spawn, entity.Layer(cfg.Collision.Layer)),
		probes: entity.NewProbeSet(body),
	}
	if !cfg.Ground.LegProbes {
		b.probes.LeftLeg.Enabled = false
		b.probes.RightLeg.Enabled = false
	}

	probe := NewNearestSurfaceProbe(caster, cfg.Collision.HitBufferSize)
	b.integrator = NewVelocityIntegrator(cfg)
	b.tracker = NewGroundTracker(cfg, probe, &b.probes)
	b.mover = NewSweptMover(cfg, probe, b.tracker, &b.probes)
	return b
}

// ProbeShapeFromConfig builds the body probe described by cfg
func ProbeShapeFromConfig(cfg config.BodyConfig) entity.ProbeShape {
	if cfg.Kind == entity.ShapeBox.String() {
		return entity.ProbeShape{Kind: entity.ShapeBox, HalfExtents: geom.V(cfg.HalfWidth, cfg.HalfHeight)}
	}
	return entity.ProbeShape{Kind: entity.ShapeCircle, HalfExtents: geom.V(cfg.HalfWidth, cfg.HalfWidth)}
}

// Tick advances the character by dt seconds
func (b *CharacterBody2D) Tick(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		panic(fmt.Sprintf("system: invalid tick dt %v", dt))
	}

	s := &b.state
	s.WasGrounded = s.Grounded
	start := s.Position

	b.integrator.Integrate(s, b.force, dt)
	b.force = geom.Zero
	if !s.Velocity.IsFinite() {
		panic(fmt.Sprintf("system: non-finite velocity %v", s.Velocity))
	}

	// Grounded characters reach a little further down to stay on bumps
	vertical := s.Velocity.Y * dt
	if s.Grounded && vertical <= 0 {
		vertical -= b.cfg.Ground.SnapDistance
	}

	filter := b.Filter()
	b.tracker.UpdateGroundNormal(s, vertical, filter)

	// Gravity correction, swept so a slide never ends inside another surface
	axis, dist, contact := b.tracker.Correction()
	if contact {
		dist = math.Max(dist-b.cfg.Ground.GroundOffset, 0)
	}
	b.mover.Sweep(s, axis, dist, filter)

	move := s.GroundNormal.Tangent().Scale(s.Velocity.X * dt)
	maxRecursion := b.cfg.Collision.MaxRecursion
	b.mover.ResolveMove(s, move, maxRecursion, filter)

	s.Rotation = geom.SignedAngleDeg(geom.Up, s.GroundNormal)

	if s.Velocity.X > 0 {
		s.FacingRight = true
	} else if s.Velocity.X < 0 {
		s.FacingRight = false
	}
	s.FrameVelocity = s.Position.Sub(start).Scale(1 / dt)
}

// Filter returns the contact filter for the character's current layer
func (b *CharacterBody2D) Filter() entity.ContactFilter {
	mask := entity.AllLayers
	if b.matrix != nil {
		mask = b.matrix.CollisionMaskFor(b.state.Layer)
	}
	return entity.ContactFilter{
		Layer:           b.state.Layer,
		Mask:            mask,
		ExcludeTriggers: true,
	}
}

// SetForce queues input for the next tick; the last call wins
func (b *CharacterBody2D) SetForce(input geom.Vec2) {
	b.force = input
}

// SetVelocity overrides the velocity with a world-space value
func (b *CharacterBody2D) SetVelocity(v geom.Vec2) {
	b.state.SetWorldVelocity(v)
}

// SetLayer moves the character to a collision layer
func (b *CharacterBody2D) SetLayer(layer entity.Layer) {
	b.state.Layer = layer
}

// Teleport places the character without sweeping
func (b *CharacterBody2D) Teleport(position geom.Vec2) {
	b.state.Position = position
}

// HorizontalSpeedRatio returns ground speed over the soft cap, in [-1, 1]
func (b *CharacterBody2D) HorizontalSpeedRatio() float64 {
	return geom.Clamp(b.state.Velocity.X/b.cfg.Movement.MaxHorizontalSpeed, -1, 1)
}

func (b *CharacterBody2D) Grounded() bool { return b.state.Grounded }

func (b *CharacterBody2D) Rotation() float64 { return b.state.Rotation }

func (b *CharacterBody2D) Position() geom.Vec2 { return b.state.Position }

// State returns a copy of the physics state
func (b *CharacterBody2D) State() entity.CharacterState { return b.state }

// Probes returns the probe shapes, for debug drawing
func (b *CharacterBody2D) Probes() entity.ProbeSet { return b.probes }

// Snapshot returns the published outputs of the last tick
func (b *CharacterBody2D) Snapshot() Snapshot {
	return Snapshot{
		Position:             b.state.Position,
		Velocity:             b.state.WorldVelocity(),
		Rotation:             b.state.Rotation,
		Grounded:             b.state.Grounded,
		HorizontalSpeedRatio: b.HorizontalSpeedRatio(),
		FacingRight:          b.state.FacingRight,
		Layer:                b.state.Layer,
	}
}
