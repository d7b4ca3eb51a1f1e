package system

import (
	"math"

	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
	"github.com/younwookim/slopewalk/internal/infrastructure/config"
)

// DefaultMaxRecursion bounds the redirects of one move
const DefaultMaxRecursion = 3

// SweptMover moves the character along the ground, redirecting the
// blocked remainder along walkable surfaces.
type SweptMover struct {
	cfg     *config.CharacterConfig
	probe   *NearestSurfaceProbe
	tracker *GroundTracker
	probes  *entity.ProbeSet
}

// NewSweptMover creates a mover sharing the tracker's walkability rule
func NewSweptMover(cfg *config.CharacterConfig, probe *NearestSurfaceProbe, tracker *GroundTracker, probes *entity.ProbeSet) *SweptMover {
	return &SweptMover{
		cfg:     cfg,
		probe:   probe,
		tracker: tracker,
		probes:  probes,
	}
}

// ResolveMove applies move to s.Position and returns the number of redirects
func (m *SweptMover) ResolveMove(s *entity.CharacterState, move geom.Vec2, maxRecursion int, filter entity.ContactFilter) int {
	if move.IsZero() {
		return 0
	}

	length := move.Len()
	dir := move.Scale(1 / length)
	hit := m.nearest(s, dir, length, filter)

	if !hit.Contact() {
		s.Position = s.Position.Add(move)
		return 0
	}

	offset := m.cfg.Ground.GroundOffset
	applied := math.Max(hit.Distance-offset, 0)
	s.Position = s.Position.Add(dir.Scale(applied))

	tail := length - applied
	if tail < offset {
		return 0
	}

	if !m.tracker.Accepts(s.GroundNormal, hit.Normal) {
		m.bounce(s, hit.Normal)
		return 0
	}

	if maxRecursion <= 0 || !s.Grounded || !s.SlopeNormal.ApproxEqual(s.GroundNormal, normalEpsilon) {
		return 0
	}

	s.GroundNormal = hit.Normal
	s.SlopeNormal = hit.Normal

	next := hit.Normal.Tangent().Scale(tail * geom.Sign(s.Velocity.X))
	return 1 + m.ResolveMove(s, next, maxRecursion-1, filter)
}

// Sweep moves s along dir (unit) by at most distance, stopping the ground
// offset short of the first surface. It returns the distance moved.
func (m *SweptMover) Sweep(s *entity.CharacterState, dir geom.Vec2, distance float64, filter entity.ContactFilter) float64 {
	if distance <= 0 {
		return 0
	}
	hit := m.nearest(s, dir, distance, filter)
	if hit.Contact() {
		distance = math.Min(distance, math.Max(hit.Distance-m.cfg.Ground.GroundOffset, 0))
	}
	s.Position = s.Position.Add(dir.Scale(distance))
	return distance
}

// nearest probes the body and the solid legs
func (m *SweptMover) nearest(s *entity.CharacterState, dir geom.Vec2, length float64, filter entity.ContactFilter) entity.SurfaceHit {
	best := entity.SurfaceHit{Distance: length, Layer: filter.Layer}
	for _, shape := range m.probes.Solid() {
		h := m.probe.Probe(shape.Place(s.Position, s.Rotation), dir, length, filter)
		if h.Contact() && (!best.Contact() || h.Distance < best.Distance) {
			best = h
		}
	}
	return best
}

// bounce removes the velocity into an unwalkable surface, scaled by restitution
func (m *SweptMover) bounce(s *entity.CharacterState, n geom.Vec2) {
	world := s.WorldVelocity()
	into := world.Dot(n)
	if into >= 0 {
		return
	}
	world = world.Sub(n.Scale((1 + m.cfg.Collision.WallRestitution) * into))
	s.SetWorldVelocity(world)
}
