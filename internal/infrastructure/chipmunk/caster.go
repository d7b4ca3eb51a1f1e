// Package chipmunk provides a shape-cast primitive backed by a chipmunk
// space. Circles are cast exactly; boxes are cast as their inscribed circle.
// A shape that already overlaps a segment reports no contact with it.
package chipmunk

import (
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
)

// Caster answers casts with Space.SegmentQuery
type Caster struct {
	space    *cp.Space
	surfaces map[*cp.Shape]*entity.Surface
	found    []entity.CastHit
}

// NewCaster adds every stage surface to a fresh space as a static segment
func NewCaster(stage *entity.Stage) *Caster {
	c := &Caster{
		space:    cp.NewSpace(),
		surfaces: make(map[*cp.Shape]*entity.Surface, len(stage.Surfaces)),
	}

	for i := range stage.Surfaces {
		s := stage.Surfaces[i]
		shape := cp.NewSegment(c.space.StaticBody, vec(s.A), vec(s.B), 0)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryOf(s.Layer), cp.ALL_CATEGORIES))
		c.space.AddShape(shape)
		c.surfaces[shape] = &s
	}

	return c
}

// Space returns the underlying space, for debug drawing
func (c *Caster) Space() *cp.Space {
	return c.space
}

// Cast sweeps shape along direction (unit) up to distance and writes the
// contacts into hits, nearest first
func (c *Caster) Cast(shape entity.PlacedShape, direction geom.Vec2, filter entity.ContactFilter, distance float64, hits []entity.CastHit) int {
	if !direction.IsFinite() || direction.IsZero() {
		panic(fmt.Sprintf("chipmunk: invalid cast direction %v", direction))
	}
	if distance <= 0 {
		return 0
	}

	start := shape.Center
	end := start.Add(direction.Scale(distance))
	qf := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(filter.Mask))

	c.found = c.found[:0]
	c.space.SegmentQuery(vec(start), vec(end), shape.Radius(), qf, func(sh *cp.Shape, _, normal cp.Vector, alpha float64, _ interface{}) {
		s, ok := c.surfaces[sh]
		if !ok || !filter.Accepts(s) {
			return
		}
		c.found = append(c.found, entity.CastHit{
			Normal:   geom.V(normal.X, normal.Y),
			Distance: alpha * distance,
			Layer:    s.Layer,
			Platform: s.OneWay,
		})
	}, nil)

	sort.SliceStable(c.found, func(i, j int) bool {
		return c.found[i].Distance < c.found[j].Distance
	})
	return copy(hits, c.found)
}

func vec(v geom.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

// categoryOf gives each layer one chipmunk category bit
func categoryOf(l entity.Layer) uint {
	return 1 << uint(l)
}
