package system

import (
	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
)

// Intent represents a change a controller wants applied to a character
// before its next tick
type Intent interface {
	apply(b *CharacterBody2D)
}

// ForceIntent sets the movement input; the last one in a tick wins
type ForceIntent struct {
	Force geom.Vec2
}

func (i ForceIntent) apply(b *CharacterBody2D) { b.SetForce(i.Force) }

// VelocityIntent overrides the world velocity, as a spring launch does
type VelocityIntent struct {
	Velocity geom.Vec2
}

func (i VelocityIntent) apply(b *CharacterBody2D) { b.SetVelocity(i.Velocity) }

// LayerIntent moves the character to another collision layer
type LayerIntent struct {
	Layer entity.Layer
}

func (i LayerIntent) apply(b *CharacterBody2D) { b.SetLayer(i.Layer) }

// TeleportIntent places the character at Position without sweeping
type TeleportIntent struct {
	Position geom.Vec2
}

func (i TeleportIntent) apply(b *CharacterBody2D) { b.Teleport(i.Position) }

// Apply applies intents to b in order
func Apply(b *CharacterBody2D, intents ...Intent) {
	for _, i := range intents {
		i.apply(b)
	}
}
