package playing

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"

	"github.com/younwookim/slopewalk/internal/application/sim"
	"github.com/younwookim/slopewalk/internal/application/state"
	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
)

var (
	backgroundColor = color.RGBA{20, 20, 30, 255}
	triggerColor    = color.RGBA{200, 80, 200, 255}
	oneWayColor     = color.RGBA{90, 200, 255, 255}
	bodyColor       = color.RGBA{255, 220, 80, 255}
	legColor        = color.RGBA{120, 255, 120, 255}
	normalColor     = color.RGBA{255, 90, 90, 255}
	overlayColor    = color.RGBA{0, 0, 0, 160}
)

// layerColors tints solid surfaces by layer
var layerColors = []color.RGBA{
	{200, 200, 200, 255},
	{255, 160, 60, 255},
	{100, 220, 160, 255},
	{160, 140, 255, 255},
}

// toScreen maps world units (y up) to screen pixels centred on the camera
func (p *Playing) toScreen(v geom.Vec2) (float32, float32) {
	x := (v.X-p.camera.X)*p.opts.PixelsPerUnit + float64(p.opts.ScreenW)/2
	y := float64(p.opts.ScreenH)/2 - (v.Y-p.camera.Y)*p.opts.PixelsPerUnit
	return float32(x), float32(y)
}

func (p *Playing) line(screen *ebiten.Image, a, b geom.Vec2, width float32, c color.Color) {
	ax, ay := p.toScreen(a)
	bx, by := p.toScreen(b)
	vector.StrokeLine(screen, ax, ay, bx, by, width, c, true)
}

// Draw renders the scene (implements scene.Scene)
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for i := range p.opts.Stage.Surfaces {
		p.drawSurface(screen, &p.opts.Stage.Surfaces[i])
	}

	p.sim.Each(func(_ donburi.Entity, c *sim.Character) {
		p.drawCharacter(screen, c)
	})

	p.drawHUD(screen)

	switch p.control.State() {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED  (P resume, N step)")
	case state.StateReplayDone:
		p.drawOverlay(screen, "REPLAY FINISHED  (R restart)")
	}
}

func (p *Playing) drawSurface(screen *ebiten.Image, s *entity.Surface) {
	c := layerColors[int(s.Layer)%len(layerColors)]
	switch {
	case s.Trigger:
		c = triggerColor
	case s.OneWay != nil:
		c = oneWayColor
	}
	p.line(screen, s.A, s.B, 2, c)

	if s.OneWay != nil {
		mid := s.A.Add(s.B).Scale(0.5)
		p.line(screen, mid, mid.Add(s.OneWay.OpenNormal().Scale(0.5)), 1, c)
	}
}

func (p *Playing) drawCharacter(screen *ebiten.Image, c *sim.Character) {
	st := c.Body.State()
	probes := c.Body.Probes()

	p.drawShape(screen, probes.Body.Place(st.Position, st.Rotation), bodyColor)
	for _, leg := range []*entity.ProbeShape{&probes.LeftLeg, &probes.RightLeg} {
		if leg.Enabled {
			p.drawShape(screen, leg.Place(st.Position, st.Rotation), legColor)
		}
	}

	if st.Grounded {
		p.line(screen, st.Position, st.Position.Add(st.GroundNormal), 1, normalColor)
	}
}

func (p *Playing) drawShape(screen *ebiten.Image, s entity.PlacedShape, c color.Color) {
	if s.Kind == entity.ShapeCircle {
		x, y := p.toScreen(s.Center)
		vector.StrokeCircle(screen, x, y, float32(s.Radius()*p.opts.PixelsPerUnit), 1, c, true)
		return
	}
	corners := s.Corners()
	for i := range corners {
		p.line(screen, corners[i], corners[(i+1)%len(corners)], 1, c)
	}
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	pl := p.Player()
	snap := pl.Snapshot
	msg := fmt.Sprintf("%s  tick %d  [%s]\npos (%.2f, %.2f)  vel (%.2f, %.2f)\nrot %.1f  grounded %v  layer %d  speed %.2f",
		p.opts.StageName, p.sim.Tick(), p.control.State(),
		snap.Position.X, snap.Position.Y, snap.Velocity.X, snap.Velocity.Y,
		snap.Rotation, snap.Grounded, snap.Layer, snap.HorizontalSpeedRatio)
	if p.recorder != nil {
		msg += fmt.Sprintf("\nREC %d frames (F9 save)", p.recorder.FrameCount())
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, msg string) {
	w, h := float32(p.opts.ScreenW), float32(p.opts.ScreenH)
	vector.DrawFilledRect(screen, 0, 0, w, h, overlayColor, false)
	ebitenutil.DebugPrintAt(screen, msg, p.opts.ScreenW/2-len(msg)*3, p.opts.ScreenH/2)
}
