package system

import (
	"math"

	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
	"github.com/younwookim/slopewalk/internal/infrastructure/config"
)

// VelocityIntegrator applies gravity, input acceleration, friction,
// speed caps and jumps to the ground-frame velocity.
type VelocityIntegrator struct {
	cfg *config.CharacterConfig
}

// NewVelocityIntegrator creates a new velocity integrator
func NewVelocityIntegrator(cfg *config.CharacterConfig) *VelocityIntegrator {
	return &VelocityIntegrator{cfg: cfg}
}

// Integrate advances s.Velocity by one tick of input
func (vi *VelocityIntegrator) Integrate(s *entity.CharacterState, input geom.Vec2, dt float64) {
	mv := vi.cfg.Movement
	preSpeed := math.Abs(s.Velocity.X)

	// Gravity in the ground frame: along the normal it pulls into the
	// ground, along the tangent it pulls downhill
	g := s.GroundNormal.Scale(vi.cfg.Physics.Gravity * dt)
	s.Velocity.Y += g.Y
	s.Velocity.X += input.X*mv.MoveScale*(mv.AccelerationTimeConstant/dt) - g.X

	friction := mv.Friction.Air
	if s.Grounded {
		friction = mv.Friction.Ground
	}
	s.Velocity.X = geom.MoveTowards(s.Velocity.X, 0, friction)

	s.Velocity.X = vi.clampHorizontal(s, preSpeed)

	if s.Grounded && input.Y > 0 {
		s.Velocity.Y += input.Y * vi.cfg.Jump.JumpScale
	}
	maxV := vi.cfg.Physics.MaxVerticalSpeed
	s.Velocity.Y = geom.Clamp(s.Velocity.Y, -maxV, maxV)
}

// clampHorizontal applies the soft cap, letting motion that is still
// speeding up downhill keep part of the speed it gains above it, then the
// hard cap. Anything else above the soft cap is clamped back to it.
func (vi *VelocityIntegrator) clampHorizontal(s *entity.CharacterState, preSpeed float64) float64 {
	mv := vi.cfg.Movement
	vx := s.Velocity.X
	speed := math.Abs(vx)
	base := mv.MaxHorizontalSpeed

	limit := base
	if speed > base && speed > preSpeed {
		ref := math.Max(base, preSpeed)
		heading := s.GroundNormal.Tangent().Scale(geom.Sign(vx))
		downhill := math.Max(0, -heading.Y)
		limit = ref + (speed-ref)*downhill
	}
	limit = math.Min(limit, mv.TotalMaxHorizontalSpeed)

	if speed > limit {
		return geom.Sign(vx) * limit
	}
	return vx
}
