package chipmunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/slopewalk/internal/application/system"
	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
	"github.com/younwookim/slopewalk/internal/infrastructure/config"
)

var openFilter = entity.ContactFilter{Mask: entity.AllLayers, ExcludeTriggers: true}

func circleAt(x, y float64) entity.PlacedShape {
	return entity.PlacedShape{Kind: entity.ShapeCircle, Center: geom.V(x, y), HalfExtents: geom.V(0.5, 0.5)}
}

func floors() *entity.Stage {
	st := &entity.Stage{}
	st.AddSegment(geom.V(-10, 0), geom.V(10, 0), 0)
	st.AddSegment(geom.V(-10, -1), geom.V(10, -1), 1)
	return st
}

func TestCaster_CircleHitsFloor(t *testing.T) {
	c := NewCaster(floors())
	hits := make([]entity.CastHit, 4)

	n := c.Cast(circleAt(0, 2), geom.Down, openFilter, 5, hits)

	require.Equal(t, 2, n)
	assert.InDelta(t, 1.5, hits[0].Distance, 1e-9)
	assert.True(t, hits[0].Normal.ApproxEqual(geom.Up, 1e-9), "normal %v", hits[0].Normal)
	assert.Equal(t, entity.Layer(0), hits[0].Layer)
	assert.InDelta(t, 2.5, hits[1].Distance, 1e-9)
	assert.Equal(t, entity.Layer(1), hits[1].Layer)
}

func TestCaster_OutOfRange(t *testing.T) {
	c := NewCaster(floors())
	hits := make([]entity.CastHit, 4)

	assert.Zero(t, c.Cast(circleAt(0, 2), geom.Down, openFilter, 1, hits))
	assert.Zero(t, c.Cast(circleAt(0, 2), geom.Down, openFilter, 0, hits))
	assert.Zero(t, c.Cast(circleAt(0, 2), geom.Up, openFilter, 5, hits))
}

func TestCaster_Filters(t *testing.T) {
	st := floors()
	st.AddSegment(geom.V(-10, 1), geom.V(10, 1), 0).Trigger = true
	c := NewCaster(st)
	hits := make([]entity.CastHit, 4)

	onlyLayer1 := entity.ContactFilter{Layer: 1, Mask: entity.MaskOf(1), ExcludeTriggers: true}
	n := c.Cast(circleAt(0, 2), geom.Down, onlyLayer1, 5, hits)
	require.Equal(t, 1, n)
	assert.Equal(t, entity.Layer(1), hits[0].Layer)

	n = c.Cast(circleAt(0, 2), geom.Down, openFilter, 5, hits)
	require.Equal(t, 2, n, "trigger excluded")

	withTriggers := entity.ContactFilter{Mask: entity.AllLayers}
	n = c.Cast(circleAt(0, 2), geom.Down, withTriggers, 5, hits)
	require.Equal(t, 3, n)
	assert.InDelta(t, 0.5, hits[0].Distance, 1e-9)
}

func TestCaster_Truncates(t *testing.T) {
	c := NewCaster(floors())
	hits := make([]entity.CastHit, 1)

	n := c.Cast(circleAt(0, 2), geom.Down, openFilter, 5, hits)

	require.Equal(t, 1, n)
	assert.InDelta(t, 1.5, hits[0].Distance, 1e-9, "nearest kept")
}

func TestCaster_BoxUsesInscribedCircle(t *testing.T) {
	c := NewCaster(floors())
	hits := make([]entity.CastHit, 4)
	box := entity.PlacedShape{Kind: entity.ShapeBox, Center: geom.V(0, 2), HalfExtents: geom.V(0.25, 0.5)}

	n := c.Cast(box, geom.Down, openFilter, 5, hits)

	require.NotZero(t, n)
	assert.InDelta(t, 1.75, hits[0].Distance, 1e-9)
}

func TestCaster_ReportsPlatform(t *testing.T) {
	st := &entity.Stage{}
	st.AddSegment(geom.V(-1, 0), geom.V(1, 0), 0).OneWay = &entity.OneWay{}
	c := NewCaster(st)
	hits := make([]entity.CastHit, 4)

	n := c.Cast(circleAt(0, 2), geom.Down, openFilter, 5, hits)

	require.Equal(t, 1, n)
	assert.NotNil(t, hits[0].Platform)
}

func TestCaster_PanicsOnBadDirection(t *testing.T) {
	c := NewCaster(floors())
	assert.Panics(t, func() {
		c.Cast(circleAt(0, 2), geom.Zero, openFilter, 1, make([]entity.CastHit, 1))
	})
}

func TestCaster_DrivesCharacter(t *testing.T) {
	st := &entity.Stage{}
	st.AddSegment(geom.V(-50, 0), geom.V(50, 0), 0)
	cfg := config.DefaultCharacterConfig()
	body := entity.ProbeShape{Kind: entity.ShapeCircle, HalfExtents: geom.V(0.5, 0.5)}

	b := system.NewCharacterBody2D(cfg, NewCaster(st), nil, body, geom.V(0, 2))
	for i := 0; i < 120; i++ {
		b.Tick(cfg.DT())
	}

	assert.True(t, b.Grounded())
	assert.InDelta(t, 0.5+cfg.Ground.GroundOffset, b.Position().Y, 1e-3)

	for i := 0; i < 60; i++ {
		b.SetForce(geom.V(1, 0))
		b.Tick(cfg.DT())
	}
	assert.Greater(t, b.Position().X, 1.0)
	assert.True(t, b.Grounded())
}
