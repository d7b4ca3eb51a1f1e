package entity

import "github.com/younwookim/slopewalk/internal/domain/geom"

// ShapeKind selects the geometry of a probe shape
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// String returns the config name of the shape kind
func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// ProbeShape is a collider proxy attached to the character.
// Offset is relative to the character position in the character's local
// (rotated) frame. A circle uses HalfExtents.X as its radius.
type ProbeShape struct {
	Kind        ShapeKind
	Offset      geom.Vec2
	HalfExtents geom.Vec2
	Enabled     bool
	Trigger     bool // triggers are probed for ground but never block movement
}

// PlacedShape is a probe shape positioned in world space for one cast
type PlacedShape struct {
	Kind        ShapeKind
	Center      geom.Vec2
	HalfExtents geom.Vec2
	Rotation    float64 // degrees, counter-clockwise
}

// Place positions the shape for a character at position rotated by rotationDeg
func (s ProbeShape) Place(position geom.Vec2, rotationDeg float64) PlacedShape {
	return PlacedShape{
		Kind:        s.Kind,
		Center:      position.Add(s.Offset.RotateDeg(rotationDeg)),
		HalfExtents: s.HalfExtents,
		Rotation:    rotationDeg,
	}
}

// Corners returns the four box corners counter-clockwise starting bottom-left
func (p PlacedShape) Corners() [4]geom.Vec2 {
	h := p.HalfExtents
	local := [4]geom.Vec2{
		{X: -h.X, Y: -h.Y},
		{X: h.X, Y: -h.Y},
		{X: h.X, Y: h.Y},
		{X: -h.X, Y: h.Y},
	}
	var out [4]geom.Vec2
	for i, c := range local {
		out[i] = p.Center.Add(c.RotateDeg(p.Rotation))
	}
	return out
}

// Radius returns the circle radius (or the inscribed radius of a box)
func (p PlacedShape) Radius() float64 {
	if p.Kind == ShapeCircle {
		return p.HalfExtents.X
	}
	if p.HalfExtents.X < p.HalfExtents.Y {
		return p.HalfExtents.X
	}
	return p.HalfExtents.Y
}

// ProbeSet is the body collider plus the two auxiliary leg probes.
// Legs are created once and live as long as the character.
type ProbeSet struct {
	Body     ProbeShape
	LeftLeg  ProbeShape
	RightLeg ProbeShape
}

// NewProbeSet creates the leg probes for a body shape.
// Legs are squares half as wide as the body, one per side, with their
// bottoms aligned to the body bottom. They start as triggers.
func NewProbeSet(body ProbeShape) ProbeSet {
	body.Enabled = true
	body.Trigger = false

	halfWidth := body.HalfExtents.X
	bottom := body.HalfExtents.Y
	if body.Kind == ShapeCircle {
		bottom = body.HalfExtents.X
	}

	legHalf := halfWidth / 2
	leg := ProbeShape{
		Kind:        ShapeBox,
		HalfExtents: geom.V(legHalf, legHalf),
		Enabled:     true,
		Trigger:     true,
	}

	left := leg
	left.Offset = body.Offset.Add(geom.V(-legHalf, -bottom+legHalf))
	right := leg
	right.Offset = body.Offset.Add(geom.V(legHalf, -bottom+legHalf))

	return ProbeSet{Body: body, LeftLeg: left, RightLeg: right}
}

// Solid returns the shapes that block movement
func (ps *ProbeSet) Solid() []*ProbeShape {
	shapes := []*ProbeShape{&ps.Body}
	if ps.LeftLeg.Enabled && !ps.LeftLeg.Trigger {
		shapes = append(shapes, &ps.LeftLeg)
	}
	if ps.RightLeg.Enabled && !ps.RightLeg.Trigger {
		shapes = append(shapes, &ps.RightLeg)
	}
	return shapes
}

// CharacterState is the mutable physics state of one character.
//
// Velocity is stored in the ground frame: X runs along GroundNormal.Tangent()
// and Y along GroundNormal. While airborne GroundNormal is Up, so the ground
// frame coincides with world space.
type CharacterState struct {
	Position geom.Vec2
	Rotation float64 // degrees from world up to GroundNormal
	Velocity geom.Vec2

	GroundNormal geom.Vec2
	SlopeNormal  geom.Vec2

	Grounded    bool
	WasGrounded bool // previous tick, for landing and take-off edges
	FacingRight bool

	Layer Layer

	// FrameVelocity is the world displacement of the last tick divided by dt
	FrameVelocity geom.Vec2
}

// NewCharacterState creates a state at rest on level ground orientation
func NewCharacterState(position geom.Vec2, layer Layer) CharacterState {
	return CharacterState{
		Position:     position,
		GroundNormal: geom.Up,
		SlopeNormal:  geom.Up,
		FacingRight:  true,
		Layer:        layer,
	}
}

// WorldVelocity converts the ground-frame velocity to world space
func (s *CharacterState) WorldVelocity() geom.Vec2 {
	return s.GroundNormal.Tangent().Scale(s.Velocity.X).Add(s.GroundNormal.Scale(s.Velocity.Y))
}

// SetWorldVelocity stores a world-space velocity in the current ground frame
func (s *CharacterState) SetWorldVelocity(v geom.Vec2) {
	s.Velocity = geom.Vec2{
		X: v.Dot(s.GroundNormal.Tangent()),
		Y: v.Dot(s.GroundNormal),
	}
}
