package system

import (
	"math"

	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
	"github.com/younwookim/slopewalk/internal/infrastructure/config"
)

// ceilingSlideAngle is the largest angle from horizontal at which a slide
// tangent is treated as a ceiling rather than a steep slope.
const ceilingSlideAngle = 45.0

// normalEpsilon is the tolerance for comparing probe normals
const normalEpsilon = 1e-6

// GroundTracker decides each tick whether the character stands on ground
// and which normal defines its movement frame.
type GroundTracker struct {
	cfg    *config.CharacterConfig
	probe  *NearestSurfaceProbe
	probes *entity.ProbeSet

	// Positional correction computed by the last update
	corrAxis    geom.Vec2
	corrDist    float64
	corrContact bool
}

// NewGroundTracker creates a tracker probing with the given shapes
func NewGroundTracker(cfg *config.CharacterConfig, probe *NearestSurfaceProbe, probes *entity.ProbeSet) *GroundTracker {
	return &GroundTracker{
		cfg:    cfg,
		probe:  probe,
		probes: probes,
	}
}

// Accepts reports whether candidate is walkable relative to the current ground normal
func (t *GroundTracker) Accepts(current, candidate geom.Vec2) bool {
	return geom.AngleDeg(candidate, current) < t.cfg.Ground.MaxNormalAngle
}

// Correction returns the displacement the facade applies after the update.
// Contact is true when the distance ends at a surface, in which case the
// ground offset still has to be kept.
func (t *GroundTracker) Correction() (axis geom.Vec2, distance float64, contact bool) {
	return t.corrAxis, t.corrDist, t.corrContact
}

// UpdateGroundNormal probes along the ground normal by verticalForce
// (signed distance, negative toward the ground) and updates the ground
// state, the movement frame and the velocity of s.
func (t *GroundTracker) UpdateGroundNormal(s *entity.CharacterState, verticalForce float64, filter entity.ContactFilter) {
	sign := geom.Sign(verticalForce)
	if sign == 0 {
		sign = -1
	}
	dir := s.GroundNormal.Scale(sign)
	dist := math.Abs(verticalForce)

	body := t.probe.Probe(t.probes.Body.Place(s.Position, s.Rotation), dir, dist, filter)
	left := t.probeLeg(&t.probes.LeftLeg, s, dir, dist, filter)
	right := t.probeLeg(&t.probes.RightLeg, s, dir, dist, filter)

	// Legs refine standing on edges; a landing is decided by the body alone
	// because the legs are still placed in the previous frame
	leftOK := s.WasGrounded && t.legValid(left, s.GroundNormal, body.Normal)
	rightOK := s.WasGrounded && t.legValid(right, s.GroundNormal, body.Normal)

	hit := body
	tolerance := t.cfg.Ground.MaxNormalAngle
	switch {
	case leftOK && !rightOK:
		hit = left
		tolerance = t.legTolerance(left, body.Normal)
		t.probes.LeftLeg.Trigger = false
		t.probes.RightLeg.Trigger = true
	case rightOK && !leftOK:
		hit = right
		tolerance = t.legTolerance(right, body.Normal)
		t.probes.LeftLeg.Trigger = true
		t.probes.RightLeg.Trigger = false
	default:
		t.probes.LeftLeg.Trigger = true
		t.probes.RightLeg.Trigger = true
	}

	switch {
	case !hit.Contact():
		t.leaveGround(s, dir, dist)
	case geom.AngleDeg(hit.Normal, s.GroundNormal) < tolerance:
		t.land(s, hit, dir)
	default:
		t.touchSteep(s, hit, sign, dist)
	}
}

func (t *GroundTracker) probeLeg(leg *entity.ProbeShape, s *entity.CharacterState, dir geom.Vec2, dist float64, filter entity.ContactFilter) entity.SurfaceHit {
	if !leg.Enabled {
		return entity.SurfaceHit{Distance: dist, Layer: filter.Layer}
	}
	return t.probe.Probe(leg.Place(s.Position, s.Rotation), dir, dist, filter)
}

// legTolerance widens the angle tolerance for a leg that disagrees with the body
func (t *GroundTracker) legTolerance(leg entity.SurfaceHit, bodyNormal geom.Vec2) float64 {
	if leg.Normal.ApproxEqual(bodyNormal, normalEpsilon) {
		return t.cfg.Ground.MaxNormalAngle
	}
	return t.cfg.Ground.MaxNormalAngle + t.cfg.Ground.EdgeAngleBonus
}

func (t *GroundTracker) legValid(leg entity.SurfaceHit, groundNormal, bodyNormal geom.Vec2) bool {
	if !leg.Contact() || leg.Distance <= 0 {
		return false
	}
	return geom.AngleDeg(leg.Normal, groundNormal) < t.legTolerance(leg, bodyNormal)
}

// land accepts the hit normal as the new ground. The correction runs along
// the cast direction, where the hit distance was measured.
func (t *GroundTracker) land(s *entity.CharacterState, hit entity.SurfaceHit, dir geom.Vec2) {
	world := s.WorldVelocity()

	s.Grounded = true
	s.GroundNormal = hit.Normal
	s.SlopeNormal = hit.Normal

	if !s.WasGrounded {
		// Keep only the part of the fall that runs along the new ground
		s.Velocity.X = world.Dot(hit.Normal.Tangent())
	}

	bias := t.cfg.Ground.GroundBias
	if math.Abs(s.Velocity.X) > t.cfg.Ground.StickySpeedThreshold {
		bias *= t.cfg.Ground.StickyBiasMultiplier
	}
	s.Velocity.Y = -bias

	if t.cfg.Ground.AdoptSurfaceLayer {
		s.Layer = hit.Layer
	}

	t.corrAxis = dir
	t.corrDist = hit.Distance
	t.corrContact = true
}

// touchSteep records a surface too steep to stand on
func (t *GroundTracker) touchSteep(s *entity.CharacterState, hit entity.SurfaceHit, sign, dist float64) {
	s.Grounded = false
	s.SlopeNormal = hit.Normal

	slide := hit.Normal.Perp()
	if slide.Y < 0 {
		slide = slide.Neg()
	}

	if geom.AngleDeg(slide, geom.V(math.Copysign(1, slide.X), 0)) <= ceilingSlideAngle {
		// Ceiling: stop the vertical motion here
		s.Velocity.Y = -t.cfg.Ground.GroundBias
		t.corrAxis = slide
		t.corrDist = 0
		t.corrContact = true
		return
	}

	if !s.WasGrounded {
		world := s.WorldVelocity()
		if into := world.Dot(hit.Normal); into < 0 {
			world = world.Sub(hit.Normal.Scale((1 + t.cfg.Collision.WallRestitution) * into))
			s.SetWorldVelocity(world)
		}
	}

	t.corrAxis = slide.Scale(sign)
	t.corrDist = dist
	t.corrContact = true
}

// leaveGround switches to the world frame when nothing is below
func (t *GroundTracker) leaveGround(s *entity.CharacterState, dir geom.Vec2, dist float64) {
	world := s.WorldVelocity()

	s.Grounded = false
	s.GroundNormal = geom.Up
	s.SlopeNormal = geom.Up
	s.Velocity = world

	t.corrAxis = dir
	t.corrDist = dist
	t.corrContact = false
}
