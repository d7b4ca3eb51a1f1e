package entity

import "github.com/younwookim/slopewalk/internal/domain/geom"

// Layer is a collision layer index in [0, 31]
type Layer int

// LayerMask is a bit set of layers
type LayerMask uint32

// AllLayers matches every layer
const AllLayers LayerMask = ^LayerMask(0)

// MaskOf builds a mask from layers
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << uint(l)
	}
	return m
}

// Has reports whether the mask contains layer
func (m LayerMask) Has(l Layer) bool {
	if l < 0 || l > 31 {
		return false
	}
	return m&(1<<uint(l)) != 0
}

// CollisionMatrix maps a layer to the layers it collides with.
// Layers without an entry collide with everything.
type CollisionMatrix map[Layer]LayerMask

// CollisionMaskFor returns the collision mask for layer
func (m CollisionMatrix) CollisionMaskFor(l Layer) LayerMask {
	if mask, ok := m[l]; ok {
		return mask
	}
	return AllLayers
}

// ContactFilter selects which surfaces a cast may hit.
// It is built once per tick from the character's current layer.
type ContactFilter struct {
	Layer           Layer
	Mask            LayerMask
	ExcludeTriggers bool
}

// Accepts reports whether a surface passes the filter
func (f ContactFilter) Accepts(s *Surface) bool {
	if f.ExcludeTriggers && s.Trigger {
		return false
	}
	return f.Mask.Has(s.Layer)
}

// OneWay marks a surface as a one-way platform.
// The open normal is world up rotated by Rotation; approaches within half
// of SurfaceArc of it collide, everything else passes through.
type OneWay struct {
	Rotation   float64 // degrees
	SurfaceArc float64 // degrees
}

// DefaultSurfaceArc is the arc used when a one-way platform does not set one
const DefaultSurfaceArc = 180

// OpenNormal returns the direction the platform can be stood on from
func (o OneWay) OpenNormal() geom.Vec2 {
	return geom.Up.RotateDeg(o.Rotation)
}

// HalfArc returns half of the surface arc in degrees
func (o OneWay) HalfArc() float64 {
	if o.SurfaceArc <= 0 {
		return DefaultSurfaceArc / 2
	}
	return o.SurfaceArc / 2
}

// Surface is a static collision segment.
// Segments are two-sided; the contact normal always faces the caster.
type Surface struct {
	ID      int
	A, B    geom.Vec2
	Layer   Layer
	Trigger bool
	OneWay  *OneWay
}

// Normal returns the left-hand unit normal of A->B
func (s *Surface) Normal() geom.Vec2 {
	return s.B.Sub(s.A).Perp().Normalize()
}

// CastHit is one raw contact reported by a shape-cast primitive
type CastHit struct {
	Normal   geom.Vec2
	Distance float64
	Layer    Layer
	Platform *OneWay
}

// SurfaceHit is the result of a nearest-surface probe.
// A zero Normal means no contact, with Distance equal to the cast distance.
type SurfaceHit struct {
	Normal   geom.Vec2
	Distance float64
	Layer    Layer
}

// Contact reports whether the probe found a surface
func (h SurfaceHit) Contact() bool {
	return !h.Normal.IsZero()
}

// Stage is the static geometry of a level
type Stage struct {
	Name     string
	Surfaces []Surface
	Spawn    geom.Vec2
	Matrix   CollisionMatrix
}

// AddSegment appends a surface and assigns its ID.
// The returned pointer is valid until the next Add call.
func (s *Stage) AddSegment(a, b geom.Vec2, layer Layer) *Surface {
	s.Surfaces = append(s.Surfaces, Surface{
		ID:    len(s.Surfaces),
		A:     a,
		B:     b,
		Layer: layer,
	})
	return &s.Surfaces[len(s.Surfaces)-1]
}

// AddChain appends consecutive segments through points.
// A closed chain also joins the last point back to the first.
func (s *Stage) AddChain(points []geom.Vec2, layer Layer, closed bool) {
	if len(points) < 2 {
		return
	}
	for i := 0; i+1 < len(points); i++ {
		s.AddSegment(points[i], points[i+1], layer)
	}
	if closed && len(points) > 2 {
		s.AddSegment(points[len(points)-1], points[0], layer)
	}
}
