package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
)

var allFilter = entity.ContactFilter{Mask: entity.AllLayers, ExcludeTriggers: true}

func floorStage() *entity.Stage {
	st := &entity.Stage{Name: "floor"}
	st.AddSegment(geom.V(-5, 0), geom.V(5, 0), 0)
	return st
}

func circleAt(x, y, r float64) entity.PlacedShape {
	return entity.PlacedShape{Kind: entity.ShapeCircle, Center: geom.V(x, y), HalfExtents: geom.V(r, r)}
}

func boxAt(x, y, hx, hy, rot float64) entity.PlacedShape {
	return entity.PlacedShape{Kind: entity.ShapeBox, Center: geom.V(x, y), HalfExtents: geom.V(hx, hy), Rotation: rot}
}

func TestWorld_CastCircle(t *testing.T) {
	w := NewWorld(floorStage())

	tests := []struct {
		name     string
		shape    entity.PlacedShape
		dir      geom.Vec2
		dist     float64
		wantHit  bool
		wantDist float64
		wantN    geom.Vec2
	}{
		{
			name:     "face hit from above",
			shape:    circleAt(0, 2, 0.5),
			dir:      geom.Down,
			dist:     5,
			wantHit:  true,
			wantDist: 1.5,
			wantN:    geom.Up,
		},
		{
			name:  "out of range",
			shape: circleAt(0, 2, 0.5),
			dir:   geom.Down,
			dist:  1,
		},
		{
			name:     "endpoint hit",
			shape:    circleAt(5.3, 2, 0.5),
			dir:      geom.Down,
			dist:     5,
			wantHit:  true,
			wantDist: 1.6,
			wantN:    geom.V(0.6, 0.8),
		},
		{
			name:     "face hit from below",
			shape:    circleAt(0, -2, 0.5),
			dir:      geom.Up,
			dist:     5,
			wantHit:  true,
			wantDist: 1.5,
			wantN:    geom.Down,
		},
		{
			name:  "moving parallel",
			shape: circleAt(0, 1, 0.5),
			dir:   geom.Right,
			dist:  3,
		},
		{
			name:     "overlapping",
			shape:    circleAt(0, 0.2, 0.5),
			dir:      geom.Down,
			dist:     1,
			wantHit:  true,
			wantDist: 0,
			wantN:    geom.Up,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := make([]entity.CastHit, 4)
			n := w.Cast(tt.shape, tt.dir, allFilter, tt.dist, hits)

			if !tt.wantHit {
				assert.Zero(t, n)
				return
			}
			require.Equal(t, 1, n)
			assert.InDelta(t, tt.wantDist, hits[0].Distance, 1e-9)
			assert.True(t, hits[0].Normal.ApproxEqual(tt.wantN, 1e-9), "normal %v", hits[0].Normal)
		})
	}
}

func TestWorld_CastBox(t *testing.T) {
	w := NewWorld(floorStage())
	hits := make([]entity.CastHit, 4)

	n := w.Cast(boxAt(0, 2, 0.5, 0.5, 0), geom.Down, allFilter, 5, hits)
	require.Equal(t, 1, n)
	assert.InDelta(t, 1.5, hits[0].Distance, 1e-9)
	assert.True(t, hits[0].Normal.ApproxEqual(geom.Up, 1e-9))

	// Diamond: the lowest corner sits sqrt(0.5) below the center
	n = w.Cast(boxAt(0, 2, 0.5, 0.5, 45), geom.Down, allFilter, 5, hits)
	require.Equal(t, 1, n)
	assert.InDelta(t, 2-0.7071067811865476, hits[0].Distance, 1e-9)
}

func TestWorld_CastBox_EndpointOnEdge(t *testing.T) {
	st := &entity.Stage{}
	st.AddSegment(geom.V(0, 0), geom.V(0, -1), 0) // spike pointing up into the box
	w := NewWorld(st)
	hits := make([]entity.CastHit, 4)

	n := w.Cast(boxAt(0, 2, 0.5, 0.5, 0), geom.Down, allFilter, 5, hits)
	require.Equal(t, 1, n)
	assert.InDelta(t, 1.5, hits[0].Distance, 1e-9)
	assert.True(t, hits[0].Normal.ApproxEqual(geom.Up, 1e-9), "normal %v", hits[0].Normal)
}

func TestWorld_CastBox_Wall(t *testing.T) {
	st := &entity.Stage{}
	st.AddSegment(geom.V(3, -5), geom.V(3, 5), 0)
	w := NewWorld(st)
	hits := make([]entity.CastHit, 4)

	n := w.Cast(boxAt(0, 0, 0.5, 0.5, 0), geom.Right, allFilter, 5, hits)
	require.Equal(t, 1, n)
	assert.InDelta(t, 2.5, hits[0].Distance, 1e-9)
	assert.True(t, hits[0].Normal.ApproxEqual(geom.Left, 1e-9))
}

func TestWorld_CastFilters(t *testing.T) {
	st := &entity.Stage{}
	st.AddSegment(geom.V(-5, 0), geom.V(5, 0), 3)
	trig := st.AddSegment(geom.V(-5, 1), geom.V(5, 1), 0)
	trig.Trigger = true
	w := NewWorld(st)
	hits := make([]entity.CastHit, 4)
	shape := circleAt(0, 3, 0.5)

	n := w.Cast(shape, geom.Down, entity.ContactFilter{Mask: entity.MaskOf(0), ExcludeTriggers: true}, 10, hits)
	assert.Zero(t, n, "layer 3 masked out, trigger excluded")

	n = w.Cast(shape, geom.Down, entity.ContactFilter{Mask: entity.AllLayers}, 10, hits)
	require.Equal(t, 2, n)
	assert.InDelta(t, 1.5, hits[0].Distance, 1e-9, "trigger surface is nearest")
	assert.Equal(t, entity.Layer(3), hits[1].Layer)
}

func TestWorld_CastSortsAndTruncates(t *testing.T) {
	st := &entity.Stage{}
	st.AddSegment(geom.V(-5, -2), geom.V(5, -2), 0)
	st.AddSegment(geom.V(-5, 0), geom.V(5, 0), 0)
	st.AddSegment(geom.V(-5, -1), geom.V(5, -1), 0)
	w := NewWorld(st)

	hits := make([]entity.CastHit, 2)
	n := w.Cast(circleAt(0, 2, 0.5), geom.Down, allFilter, 10, hits)

	require.Equal(t, 2, n)
	assert.InDelta(t, 1.5, hits[0].Distance, 1e-9)
	assert.InDelta(t, 2.5, hits[1].Distance, 1e-9)
}

func TestWorld_CastReportsPlatform(t *testing.T) {
	st := &entity.Stage{}
	p := st.AddSegment(geom.V(-5, 0), geom.V(5, 0), 0)
	p.OneWay = &entity.OneWay{SurfaceArc: 160}
	w := NewWorld(st)
	hits := make([]entity.CastHit, 1)

	n := w.Cast(circleAt(0, 2, 0.5), geom.Down, allFilter, 5, hits)
	require.Equal(t, 1, n)
	require.NotNil(t, hits[0].Platform)
	assert.Equal(t, 160.0, hits[0].Platform.SurfaceArc)
}

func TestWorld_CastPanicsOnBadDirection(t *testing.T) {
	w := NewWorld(floorStage())
	hits := make([]entity.CastHit, 1)

	assert.Panics(t, func() {
		w.Cast(circleAt(0, 2, 0.5), geom.Zero, allFilter, 1, hits)
	})
}

func TestInsertSorted(t *testing.T) {
	hits := make([]entity.CastHit, 3)
	n := 0
	for _, d := range []float64{3, 1, 4, 2, 0.5} {
		n = insertSorted(hits, n, entity.CastHit{Distance: d})
	}

	require.Equal(t, 3, n)
	assert.Equal(t, 0.5, hits[0].Distance)
	assert.Equal(t, 1.0, hits[1].Distance)
	assert.Equal(t, 2.0, hits[2].Distance)
}
