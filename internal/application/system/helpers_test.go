package system

import (
	"github.com/younwookim/slopewalk/internal/domain/collision"
	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
	"github.com/younwookim/slopewalk/internal/infrastructure/config"
)

const testDT = 1.0 / 60.0

// stubCaster replays scripted hits and records every call
type stubCaster struct {
	hits  []entity.CastHit
	next  func(call int) []entity.CastHit // overrides hits when set
	calls int
	dirs  []geom.Vec2
}

func (c *stubCaster) Cast(_ entity.PlacedShape, direction geom.Vec2, _ entity.ContactFilter, _ float64, hits []entity.CastHit) int {
	script := c.hits
	if c.next != nil {
		script = c.next(c.calls)
	}
	c.calls++
	c.dirs = append(c.dirs, direction)
	return copy(hits, script)
}

func createTestConfig() *config.CharacterConfig {
	return config.DefaultCharacterConfig()
}

func circleBody() entity.ProbeShape {
	return entity.ProbeShape{Kind: entity.ShapeCircle, HalfExtents: geom.V(0.5, 0.5)}
}

func boxBody() entity.ProbeShape {
	return entity.ProbeShape{Kind: entity.ShapeBox, HalfExtents: geom.V(0.4, 0.5)}
}

// worldOf builds a collision world from segment endpoints, all on layer 0
func worldOf(segments ...[2]geom.Vec2) *collision.World {
	st := &entity.Stage{}
	for _, s := range segments {
		st.AddSegment(s[0], s[1], 0)
	}
	return collisionWorld(st)
}

func collisionWorld(st *entity.Stage) *collision.World {
	return collision.NewWorld(st)
}

func flatFloor() [2]geom.Vec2 {
	return [2]geom.Vec2{geom.V(-50, 0), geom.V(50, 0)}
}

// slopeThrough returns a long segment through the origin whose upward
// normal is Up rotated by deg
func slopeThrough(deg float64) [2]geom.Vec2 {
	t := geom.Up.RotateDeg(deg).Tangent()
	return [2]geom.Vec2{t.Scale(-20), t.Scale(20)}
}

type trackerFixture struct {
	cfg     *config.CharacterConfig
	probes  *entity.ProbeSet
	tracker *GroundTracker
	mover   *SweptMover
}

func newTrackerFixture(cfg *config.CharacterConfig, caster Caster, body entity.ProbeShape, legs bool) *trackerFixture {
	probes := entity.NewProbeSet(body)
	probes.LeftLeg.Enabled = legs
	probes.RightLeg.Enabled = legs

	probe := NewNearestSurfaceProbe(caster, cfg.Collision.HitBufferSize)
	tracker := NewGroundTracker(cfg, probe, &probes)
	return &trackerFixture{
		cfg:     cfg,
		probes:  &probes,
		tracker: tracker,
		mover:   NewSweptMover(cfg, probe, tracker, &probes),
	}
}

var openFilter = entity.ContactFilter{Mask: entity.AllLayers, ExcludeTriggers: true}
