// Package collision implements the shape-cast primitive over static stage
// segments: a swept circle or oriented box against every surface, returning
// the contacts nearest first.
package collision

import (
	"fmt"
	"math"

	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
)

// contactSlop is the penetration below which shapes count as touching
// rather than overlapping.
const contactSlop = 1e-9

// World holds the static surfaces of a stage.
// Cast never mutates the world, so characters may share one World.
type World struct {
	surfaces []entity.Surface
}

// NewWorld creates a world from the stage surfaces
func NewWorld(stage *entity.Stage) *World {
	surfaces := make([]entity.Surface, len(stage.Surfaces))
	copy(surfaces, stage.Surfaces)
	return &World{surfaces: surfaces}
}

// Surfaces returns the static surfaces
func (w *World) Surfaces() []entity.Surface {
	return w.surfaces
}

// Cast sweeps shape along direction (unit) up to distance and writes the
// contacts into hits, nearest first. Contacts beyond len(hits) are dropped.
// It returns the number of hits written.
func (w *World) Cast(shape entity.PlacedShape, direction geom.Vec2, filter entity.ContactFilter, distance float64, hits []entity.CastHit) int {
	if !direction.IsFinite() || direction.IsZero() {
		panic(fmt.Sprintf("collision: invalid cast direction %v", direction))
	}

	count := 0
	for i := range w.surfaces {
		s := &w.surfaces[i]
		if !filter.Accepts(s) {
			continue
		}

		var (
			ok     bool
			t      float64
			normal geom.Vec2
		)
		switch shape.Kind {
		case entity.ShapeCircle:
			ok, t, normal = castCircle(shape.Center, shape.HalfExtents.X, direction, distance, s.A, s.B)
		default:
			ok, t, normal = castBox(shape, direction, distance, s.A, s.B)
		}
		if !ok {
			continue
		}

		count = insertSorted(hits, count, entity.CastHit{
			Normal:   normal,
			Distance: t,
			Layer:    s.Layer,
			Platform: s.OneWay,
		})
	}
	return count
}

// insertSorted keeps hits[:count] ordered by distance, dropping the farthest
// contact once the buffer is full.
func insertSorted(hits []entity.CastHit, count int, h entity.CastHit) int {
	if len(hits) == 0 {
		return 0
	}
	i := count
	for i > 0 && hits[i-1].Distance > h.Distance {
		i--
	}
	if i >= len(hits) {
		return count
	}
	if count < len(hits) {
		count++
	}
	copy(hits[i+1:count], hits[i:count-1])
	hits[i] = h
	return count
}

// castCircle sweeps a circle against segment ab (ray against the capsule
// around the segment).
func castCircle(c geom.Vec2, r float64, d geom.Vec2, maxDist float64, a, b geom.Vec2) (bool, float64, geom.Vec2) {
	q := closestPoint(a, b, c)
	off := c.Sub(q)
	if off.Len() < r-contactSlop {
		n := off.Normalize()
		if n.IsZero() {
			n = facingNormal(a, b, d)
		}
		return true, 0, n
	}

	best := math.Inf(1)
	var bestN geom.Vec2

	seg := b.Sub(a)
	if l := seg.Len(); l > geom.Epsilon {
		n := seg.Perp().Scale(1 / l)
		s := c.Sub(a).Dot(n)
		if s < 0 {
			n = n.Neg()
			s = -s
		}
		if denom := d.Dot(n); denom < -geom.Epsilon {
			t := (s - r) / -denom
			if t >= 0 && t <= maxDist {
				p := c.Add(d.Scale(t)).Sub(n.Scale(r))
				u := p.Sub(a).Dot(seg) / (l * l)
				if u >= 0 && u <= 1 {
					best = t
					bestN = n
				}
			}
		}
	}

	for _, e := range [2]geom.Vec2{a, b} {
		t, ok := rayCircle(c, d, e, r)
		if !ok || t > maxDist || t >= best {
			continue
		}
		best = t
		bestN = c.Add(d.Scale(t)).Sub(e).Normalize()
	}

	if math.IsInf(best, 1) || bestN.IsZero() {
		return false, 0, geom.Zero
	}
	return true, best, bestN
}

// castBox sweeps an oriented box against segment ab. Contact happens either
// when a box corner reaches the segment or a segment endpoint reaches a box edge.
func castBox(box entity.PlacedShape, d geom.Vec2, maxDist float64, a, b geom.Vec2) (bool, float64, geom.Vec2) {
	corners := box.Corners()
	if boxOverlapsSegment(box, a, b) {
		n := facingNormal(a, b, d)
		if side := box.Center.Sub(a).Dot(n); side < -geom.Epsilon {
			n = n.Neg()
		}
		return true, 0, n
	}

	best := math.Inf(1)
	var bestN geom.Vec2

	segN := facingNormal(a, b, d)
	for _, c := range corners {
		t, ok := raySegment(c, d, a, b)
		if !ok || t > maxDist || t >= best {
			continue
		}
		best = t
		bestN = segN
	}

	back := d.Neg()
	for _, e := range [2]geom.Vec2{a, b} {
		for i := range corners {
			ci, cj := corners[i], corners[(i+1)%len(corners)]
			t, ok := raySegment(e, back, ci, cj)
			if !ok || t > maxDist || t >= best {
				continue
			}
			best = t
			// Corners run counter-clockwise, so Tangent is the outward edge normal
			bestN = cj.Sub(ci).Tangent().Normalize().Neg()
		}
	}

	if math.IsInf(best, 1) || bestN.IsZero() {
		return false, 0, geom.Zero
	}
	return true, best, bestN
}

// facingNormal returns the unit normal of ab that opposes d
func facingNormal(a, b, d geom.Vec2) geom.Vec2 {
	n := b.Sub(a).Perp().Normalize()
	if n.IsZero() {
		return d.Neg().Normalize()
	}
	if n.Dot(d) > 0 {
		n = n.Neg()
	}
	return n
}

// closestPoint returns the point on segment ab nearest to p
func closestPoint(a, b, p geom.Vec2) geom.Vec2 {
	ab := b.Sub(a)
	l2 := ab.LenSq()
	if l2 < geom.Epsilon {
		return a
	}
	u := geom.Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return a.Add(ab.Scale(u))
}

// rayCircle returns the first t >= 0 where o + d*t enters the circle (e, r)
func rayCircle(o, d, e geom.Vec2, r float64) (float64, bool) {
	m := o.Sub(e)
	bq := m.Dot(d)
	cq := m.LenSq() - r*r
	if cq > 0 && bq > 0 {
		return 0, false
	}
	disc := bq*bq - cq
	if disc < 0 {
		return 0, false
	}
	t := -bq - math.Sqrt(disc)
	if t < 0 {
		t = 0
	}
	return t, true
}

// raySegment intersects the ray o + d*t (t >= 0) with segment ab
func raySegment(o, d, a, b geom.Vec2) (float64, bool) {
	e := b.Sub(a)
	denom := d.Cross(e)
	if math.Abs(denom) < geom.Epsilon {
		return 0, false
	}
	w := a.Sub(o)
	t := w.Cross(e) / denom
	u := w.Cross(d) / denom
	if t < 0 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// boxOverlapsSegment runs a separating axis test with the two box axes and
// the segment normal; touching does not count as overlap.
func boxOverlapsSegment(box entity.PlacedShape, a, b geom.Vec2) bool {
	u1 := geom.Right.RotateDeg(box.Rotation)
	u2 := geom.Up.RotateDeg(box.Rotation)
	axes := [3]geom.Vec2{u1, u2, b.Sub(a).Perp().Normalize()}

	for _, axis := range axes {
		if axis.IsZero() {
			continue
		}
		c := box.Center.Dot(axis)
		ext := box.HalfExtents.X*math.Abs(u1.Dot(axis)) + box.HalfExtents.Y*math.Abs(u2.Dot(axis))
		pa, pb := a.Dot(axis), b.Dot(axis)
		lo, hi := math.Min(pa, pb), math.Max(pa, pb)
		if hi <= c-ext+contactSlop || lo >= c+ext-contactSlop {
			return false
		}
	}
	return true
}
