package system

import (
	"fmt"
	"math"

	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
)

// DefaultHitBufferSize is the number of raw contacts kept per cast
const DefaultHitBufferSize = 16

// NearestSurfaceProbe finds the closest surface opposing a cast direction.
// The hit buffer is allocated once; a probe is not safe for concurrent use.
type NearestSurfaceProbe struct {
	caster Caster
	hits   []entity.CastHit
}

// NewNearestSurfaceProbe creates a probe over caster.
// A non-positive bufferSize selects DefaultHitBufferSize.
func NewNearestSurfaceProbe(caster Caster, bufferSize int) *NearestSurfaceProbe {
	if bufferSize <= 0 {
		bufferSize = DefaultHitBufferSize
	}
	return &NearestSurfaceProbe{
		caster: caster,
		hits:   make([]entity.CastHit, bufferSize),
	}
}

// Probe casts shape along direction up to maxDistance and returns the nearest
// hit whose normal opposes the motion. Without a valid hit the result has a
// zero Normal, Distance maxDistance and the filter's layer.
func (p *NearestSurfaceProbe) Probe(shape entity.PlacedShape, direction geom.Vec2, maxDistance float64, filter entity.ContactFilter) entity.SurfaceHit {
	if !direction.IsFinite() || direction.IsZero() {
		panic(fmt.Sprintf("system: invalid probe direction %v", direction))
	}
	if math.IsNaN(maxDistance) || math.IsInf(maxDistance, 0) || maxDistance < 0 {
		panic(fmt.Sprintf("system: invalid probe distance %v", maxDistance))
	}

	result := entity.SurfaceHit{Distance: maxDistance, Layer: filter.Layer}

	n := p.caster.Cast(shape, direction, filter, maxDistance, p.hits)
	for i := 0; i < n; i++ {
		h := &p.hits[i]
		if h.Distance >= result.Distance {
			continue
		}
		// Surfaces we are already leaving do not count
		if h.Normal.Dot(direction) >= 0 {
			continue
		}
		if h.Platform != nil && !passesPlatform(h, direction) {
			continue
		}
		result = entity.SurfaceHit{
			Normal:   h.Normal,
			Distance: h.Distance,
			Layer:    h.Layer,
		}
	}
	return result
}

// passesPlatform reports whether a one-way platform hit blocks the cast
func passesPlatform(h *entity.CastHit, direction geom.Vec2) bool {
	if h.Distance == 0 {
		return false
	}
	open := h.Platform.OpenNormal()
	half := h.Platform.HalfArc()
	if geom.AngleDeg(direction.Neg(), open) > half {
		return false
	}
	return geom.AngleDeg(h.Normal, open) <= half
}
