package system

import (
	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
)

// Caster is the shape-cast primitive of the physics world.
// It writes the contacts of shape swept along direction into hits and
// returns how many it wrote. Implementations never retain hits.
type Caster interface {
	Cast(shape entity.PlacedShape, direction geom.Vec2, filter entity.ContactFilter, distance float64, hits []entity.CastHit) int
}

// MaskLookup resolves which layers a layer collides with
type MaskLookup interface {
	CollisionMaskFor(layer entity.Layer) entity.LayerMask
}
