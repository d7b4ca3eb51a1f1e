package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
)

func TestSweptMover_ZeroMove(t *testing.T) {
	caster := &stubCaster{}
	f := newTrackerFixture(createTestConfig(), caster, circleBody(), true)
	s := groundedState(geom.Up, geom.Zero)

	n := f.mover.ResolveMove(&s, geom.Zero, DefaultMaxRecursion, openFilter)

	assert.Zero(t, n)
	assert.Zero(t, caster.calls)
	assert.Equal(t, geom.Zero, s.Position)
}

func TestSweptMover_FreeMove(t *testing.T) {
	f := newTrackerFixture(createTestConfig(), worldOf(flatFloor()), circleBody(), true)
	s := groundedState(geom.Up, geom.V(2, -2))
	s.Position = geom.V(0, 0.504)

	n := f.mover.ResolveMove(&s, geom.V(0.5, 0), DefaultMaxRecursion, openFilter)

	assert.Zero(t, n)
	assert.InDelta(t, 0.5, s.Position.X, 1e-12)
	assert.InDelta(t, 0.504, s.Position.Y, 1e-12)
}

func TestSweptMover_SlideAlongWall(t *testing.T) {
	wall := [2]geom.Vec2{geom.V(2, -1), geom.V(2, 5)}
	cfg := createTestConfig()

	for _, body := range []entity.ProbeShape{circleBody(), boxBody()} {
		t.Run(body.Kind.String(), func(t *testing.T) {
			f := newTrackerFixture(cfg, worldOf(flatFloor(), wall), body, true)
			s := groundedState(geom.Up, geom.V(5, -2))
			s.Position = geom.V(0, body.HalfExtents.Y+cfg.Ground.GroundOffset)

			n := f.mover.ResolveMove(&s, geom.V(3, 0), DefaultMaxRecursion, openFilter)

			d := 2 - body.HalfExtents.X
			assert.Zero(t, n, "a wall is never a redirect")
			assert.InDelta(t, d, s.Position.X, cfg.Ground.GroundOffset+1e-9)
			assert.LessOrEqual(t, s.Position.X, d)
			assert.InDelta(t, body.HalfExtents.Y+cfg.Ground.GroundOffset, s.Position.Y, 1e-12)
			assert.InDelta(t, 0, s.Velocity.X, 1e-12, "no residual motion into the wall")
		})
	}
}

func TestSweptMover_WallRestitution(t *testing.T) {
	wall := [2]geom.Vec2{geom.V(2, -1), geom.V(2, 5)}
	cfg := createTestConfig()
	cfg.Collision.WallRestitution = 0.5
	f := newTrackerFixture(cfg, worldOf(wall), circleBody(), false)
	s := groundedState(geom.Up, geom.V(4, 0))
	s.Position = geom.V(0, 1)

	f.mover.ResolveMove(&s, geom.V(3, 0), DefaultMaxRecursion, openFilter)

	assert.InDelta(t, -2, s.Velocity.X, 1e-12)
}

func TestSweptMover_RedirectsUpSlope(t *testing.T) {
	cfg := createTestConfig()
	n := geom.Up.RotateDeg(30)
	start := geom.V(1, 0)
	ramp := [2]geom.Vec2{start, start.Add(n.Tangent().Scale(10))}
	floor := [2]geom.Vec2{geom.V(-5, 0), start}
	f := newTrackerFixture(cfg, worldOf(floor, ramp), circleBody(), true)

	s := groundedState(geom.Up, geom.V(6, -2))
	s.Position = geom.V(0, 0.504)

	redirects := f.mover.ResolveMove(&s, geom.V(2, 0), DefaultMaxRecursion, openFilter)

	require.Equal(t, 1, redirects)
	assert.True(t, s.GroundNormal.ApproxEqual(n, 1e-9), "ground normal %v", s.GroundNormal)
	assert.Equal(t, s.GroundNormal, s.SlopeNormal)
	assert.Greater(t, s.Position.Y, 0.504, "climbed the ramp")
	assert.Equal(t, 6.0, s.Velocity.X, "ground speed carries over to the new frame")
}

func TestSweptMover_StopsOnSteepTick(t *testing.T) {
	caster := &stubCaster{hits: []entity.CastHit{{Normal: geom.Up.RotateDeg(20), Distance: 0.2}}}
	f := newTrackerFixture(createTestConfig(), caster, circleBody(), false)

	s := groundedState(geom.Up, geom.V(1, 0))
	s.SlopeNormal = geom.Left

	n := f.mover.ResolveMove(&s, geom.V(1, 0), DefaultMaxRecursion, openFilter)

	assert.Zero(t, n)
	assert.Equal(t, geom.Up, s.GroundNormal)
	assert.InDelta(t, 0.2-f.cfg.Ground.GroundOffset, s.Position.X, 1e-12)
}

func TestSweptMover_BoundedRecursion(t *testing.T) {
	// Every cast meets a wall 30 degrees further round, like the inside of a ring
	ring := func(call int) []entity.CastHit {
		return []entity.CastHit{{Normal: geom.Up.RotateDeg(30 * float64(call+1)), Distance: 0.1}}
	}

	tests := []struct {
		maxRecursion int
		wantCalls    int
	}{
		{maxRecursion: 3, wantCalls: 4},
		{maxRecursion: 1, wantCalls: 2},
		{maxRecursion: 0, wantCalls: 1},
	}

	for _, tt := range tests {
		caster := &stubCaster{next: ring}
		f := newTrackerFixture(createTestConfig(), caster, circleBody(), false)
		s := groundedState(geom.Up, geom.V(1, 0))

		n := f.mover.ResolveMove(&s, geom.V(1, 0), tt.maxRecursion, openFilter)

		assert.Equal(t, tt.maxRecursion, n)
		assert.Equal(t, tt.wantCalls, caster.calls)
	}
}

func TestSweptMover_CastsSolidLegs(t *testing.T) {
	caster := &stubCaster{}
	f := newTrackerFixture(createTestConfig(), caster, circleBody(), true)
	s := groundedState(geom.Up, geom.V(1, 0))

	f.mover.ResolveMove(&s, geom.V(1, 0), DefaultMaxRecursion, openFilter)
	assert.Equal(t, 1, caster.calls, "trigger legs are not swept")

	f.probes.RightLeg.Trigger = false
	f.mover.ResolveMove(&s, geom.V(1, 0), DefaultMaxRecursion, openFilter)
	assert.Equal(t, 3, caster.calls)
}

func TestSweptMover_Sweep(t *testing.T) {
	cfg := createTestConfig()
	f := newTrackerFixture(cfg, worldOf(flatFloor()), circleBody(), false)

	s := airborneAt(geom.V(0, 1), geom.Zero)
	moved := f.mover.Sweep(&s, geom.Down, 0.2, openFilter)
	assert.InDelta(t, 0.2, moved, 1e-12)
	assert.InDelta(t, 0.8, s.Position.Y, 1e-12)

	moved = f.mover.Sweep(&s, geom.Down, 2, openFilter)
	assert.InDelta(t, 0.3-cfg.Ground.GroundOffset, moved, 1e-9)
	assert.InDelta(t, 0.5+cfg.Ground.GroundOffset, s.Position.Y, 1e-9)

	assert.Zero(t, f.mover.Sweep(&s, geom.Down, 0, openFilter))
}
