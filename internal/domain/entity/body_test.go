package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/slopewalk/internal/domain/geom"
)

func TestProbeShape_Place(t *testing.T) {
	tests := []struct {
		name       string
		shape      ProbeShape
		position   geom.Vec2
		rotation   float64
		wantCenter geom.Vec2
	}{
		{
			name:       "no offset",
			shape:      ProbeShape{Kind: ShapeCircle, HalfExtents: geom.V(0.5, 0.5)},
			position:   geom.V(3, 4),
			wantCenter: geom.V(3, 4),
		},
		{
			name:       "offset unrotated",
			shape:      ProbeShape{Kind: ShapeBox, Offset: geom.V(-0.25, -0.25)},
			position:   geom.V(1, 1),
			wantCenter: geom.V(0.75, 0.75),
		},
		{
			name:       "offset rotated a quarter turn",
			shape:      ProbeShape{Kind: ShapeBox, Offset: geom.V(1, 0)},
			position:   geom.V(0, 0),
			rotation:   90,
			wantCenter: geom.V(0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placed := tt.shape.Place(tt.position, tt.rotation)
			assert.True(t, placed.Center.ApproxEqual(tt.wantCenter, 1e-9), "center %v", placed.Center)
			assert.Equal(t, tt.rotation, placed.Rotation)
		})
	}
}

func TestPlacedShape_Corners(t *testing.T) {
	p := PlacedShape{Kind: ShapeBox, Center: geom.V(1, 1), HalfExtents: geom.V(1, 0.5)}
	c := p.Corners()

	assert.True(t, c[0].ApproxEqual(geom.V(0, 0.5), 1e-12))
	assert.True(t, c[1].ApproxEqual(geom.V(2, 0.5), 1e-12))
	assert.True(t, c[2].ApproxEqual(geom.V(2, 1.5), 1e-12))
	assert.True(t, c[3].ApproxEqual(geom.V(0, 1.5), 1e-12))
}

func TestNewProbeSet_CircleBody(t *testing.T) {
	body := ProbeShape{Kind: ShapeCircle, HalfExtents: geom.V(0.5, 0.5)}
	ps := NewProbeSet(body)

	require.True(t, ps.Body.Enabled)
	assert.False(t, ps.Body.Trigger)

	assert.Equal(t, ShapeBox, ps.LeftLeg.Kind)
	assert.Equal(t, geom.V(0.25, 0.25), ps.LeftLeg.HalfExtents)
	assert.Equal(t, geom.V(-0.25, -0.25), ps.LeftLeg.Offset)
	assert.Equal(t, geom.V(0.25, -0.25), ps.RightLeg.Offset)
	assert.True(t, ps.LeftLeg.Trigger)
	assert.True(t, ps.RightLeg.Trigger)

	// Leg bottoms sit on the body bottom
	legBottom := ps.LeftLeg.Offset.Y - ps.LeftLeg.HalfExtents.Y
	assert.InDelta(t, -0.5, legBottom, 1e-12)
}

func TestNewProbeSet_BoxBody(t *testing.T) {
	body := ProbeShape{Kind: ShapeBox, HalfExtents: geom.V(0.4, 0.8)}
	ps := NewProbeSet(body)

	legBottom := ps.RightLeg.Offset.Y - ps.RightLeg.HalfExtents.Y
	assert.InDelta(t, -0.8, legBottom, 1e-12)
	assert.InDelta(t, 0.2, ps.RightLeg.Offset.X, 1e-12)
}

func TestProbeSet_Solid(t *testing.T) {
	ps := NewProbeSet(ProbeShape{Kind: ShapeCircle, HalfExtents: geom.V(0.5, 0.5)})
	assert.Len(t, ps.Solid(), 1)

	ps.LeftLeg.Trigger = false
	solid := ps.Solid()
	require.Len(t, solid, 2)
	assert.Same(t, &ps.LeftLeg, solid[1])

	ps.LeftLeg.Enabled = false
	assert.Len(t, ps.Solid(), 1)
}

func TestCharacterState_VelocityFrames(t *testing.T) {
	s := NewCharacterState(geom.Zero, 0)
	s.GroundNormal = geom.Up.RotateDeg(30)

	world := geom.V(2, -1)
	s.SetWorldVelocity(world)
	back := s.WorldVelocity()

	assert.True(t, back.ApproxEqual(world, 1e-12), "round trip %v", back)

	s.GroundNormal = geom.Up
	s.SetWorldVelocity(world)
	assert.Equal(t, world, s.Velocity, "flat ground frame is world space")
}
