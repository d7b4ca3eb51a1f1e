// Package tiled converts Tiled .tmx maps into stage configs.
//
// Collision comes from the object group "collision": rectangles and
// polygons become closed chains, polylines open chains. Object properties
// oneWay, rotation, arc, layer and trigger map onto the chain. The first
// object of the group "spawn" sets the spawn point.
package tiled

import (
	"errors"
	"fmt"
	"io/fs"
	"math"

	"github.com/lafriks/go-tiled"

	"github.com/younwookim/slopewalk/internal/infrastructure/config"
)

const (
	CollisionGroup = "collision"
	SpawnGroup     = "spawn"
)

// Decoder reads .tmx stages. PixelsPerUnit scales map pixels to world
// units; zero means one tile per unit.
type Decoder struct {
	PixelsPerUnit float64
}

// NewDecoder creates a decoder with the given pixel scale
func NewDecoder(pixelsPerUnit float64) *Decoder {
	return &Decoder{PixelsPerUnit: pixelsPerUnit}
}

// Register makes loader read .tmx stages through d
func (d *Decoder) Register(loader *config.Loader) {
	loader.RegisterStageFormat(".tmx", d.Decode)
}

// Decode loads the map at name from fsys
func (d *Decoder) Decode(fsys fs.FS, name string) (*config.StageConfig, error) {
	m, err := tiled.LoadFile(name, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", name, err)
	}
	return d.Convert(m)
}

// Convert builds a stage config from a parsed map
func (d *Decoder) Convert(m *tiled.Map) (*config.StageConfig, error) {
	ppu := d.PixelsPerUnit
	if ppu <= 0 {
		ppu = float64(m.TileWidth)
	}
	if ppu <= 0 {
		return nil, errors.New("map has no tile width and no pixelsPerUnit")
	}
	conv := converter{ppu: ppu, height: float64(m.Height * m.TileHeight)}

	cfg := &config.StageConfig{}
	found := false
	for _, og := range m.ObjectGroups {
		switch og.Name {
		case CollisionGroup:
			found = true
			for _, o := range og.Objects {
				if ch, ok := conv.chain(o); ok {
					cfg.Chains = append(cfg.Chains, ch)
				}
			}
		case SpawnGroup:
			if len(og.Objects) > 0 {
				o := og.Objects[0]
				cfg.Spawn = conv.point(o.X+o.Width/2, o.Y+o.Height/2)
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("map has no %q object group", CollisionGroup)
	}

	return cfg, nil
}

type converter struct {
	ppu    float64
	height float64 // map height in pixels
}

// point flips y and scales to world units
func (c converter) point(x, y float64) config.PointConfig {
	return config.PointConfig{X: x / c.ppu, Y: (c.height - y) / c.ppu}
}

func (c converter) chain(o *tiled.Object) (config.ChainConfig, bool) {
	var local [][2]float64
	closed := false

	switch {
	case len(o.Polygons) > 0 && o.Polygons[0].Points != nil:
		for _, p := range *o.Polygons[0].Points {
			local = append(local, [2]float64{p.X, p.Y})
		}
		closed = true
	case len(o.PolyLines) > 0 && o.PolyLines[0].Points != nil:
		for _, p := range *o.PolyLines[0].Points {
			local = append(local, [2]float64{p.X, p.Y})
		}
	case o.Width > 0 && o.Height > 0:
		local = [][2]float64{{0, 0}, {o.Width, 0}, {o.Width, o.Height}, {0, o.Height}}
		closed = true
	case o.Width > 0:
		local = [][2]float64{{0, 0}, {o.Width, 0}}
	}
	if len(local) < 2 {
		return config.ChainConfig{}, false
	}

	// Tiled rotates clockwise about the object origin, in y-down pixels
	sin, cos := math.Sincos(o.Rotation * math.Pi / 180)
	ch := config.ChainConfig{
		Closed:  closed,
		Layer:   o.Properties.GetInt("layer"),
		Trigger: o.Properties.GetBool("trigger"),
	}
	for _, p := range local {
		x := o.X + p[0]*cos - p[1]*sin
		y := o.Y + p[0]*sin + p[1]*cos
		ch.Points = append(ch.Points, c.point(x, y))
	}

	if o.Properties.GetBool("oneWay") {
		ch.OneWay = &config.OneWayConfig{
			Rotation: o.Properties.GetFloat("rotation"),
			Arc:      o.Properties.GetFloat("arc"),
		}
	}

	return ch, true
}
