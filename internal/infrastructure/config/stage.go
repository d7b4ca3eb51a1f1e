package config

import (
	"errors"
	"fmt"
)

// StageConfig is the root config for stage files
type StageConfig struct {
	Name            string          `json:"name" yaml:"name"`
	Spawn           PointConfig     `json:"spawn" yaml:"spawn"`
	Surfaces        []SurfaceConfig `json:"surfaces" yaml:"surfaces"`
	Chains          []ChainConfig   `json:"chains" yaml:"chains"`
	CollisionMatrix map[int][]int   `json:"collisionMatrix" yaml:"collisionMatrix"` // layer -> layers it collides with
}

// PointConfig is a position in world units, y up
type PointConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// SurfaceConfig is a single collision segment
type SurfaceConfig struct {
	A       PointConfig   `json:"a" yaml:"a"`
	B       PointConfig   `json:"b" yaml:"b"`
	Layer   int           `json:"layer" yaml:"layer"`
	Trigger bool          `json:"trigger" yaml:"trigger"`
	OneWay  *OneWayConfig `json:"oneWay,omitempty" yaml:"oneWay,omitempty"`
}

// ChainConfig is a polyline of collision segments
type ChainConfig struct {
	Points  []PointConfig `json:"points" yaml:"points"`
	Closed  bool          `json:"closed" yaml:"closed"`
	Layer   int           `json:"layer" yaml:"layer"`
	Trigger bool          `json:"trigger" yaml:"trigger"`
	OneWay  *OneWayConfig `json:"oneWay,omitempty" yaml:"oneWay,omitempty"`
}

// OneWayConfig marks surfaces as one-way platforms
type OneWayConfig struct {
	Rotation float64 `json:"rotation" yaml:"rotation"` // degrees from up
	Arc      float64 `json:"arc" yaml:"arc"`           // degrees, 0 means 180
}

// Validate reports malformed geometry and out-of-range layers
func (c *StageConfig) Validate() error {
	var errs []error
	for i, s := range c.Surfaces {
		if s.A == s.B {
			errs = append(errs, fmt.Errorf("surfaces[%d]: zero length segment", i))
		}
		if !validLayer(s.Layer) {
			errs = append(errs, fmt.Errorf("surfaces[%d]: layer %d out of range", i, s.Layer))
		}
	}
	for i, ch := range c.Chains {
		if len(ch.Points) < 2 {
			errs = append(errs, fmt.Errorf("chains[%d]: need at least 2 points, got %d", i, len(ch.Points)))
		}
		if !validLayer(ch.Layer) {
			errs = append(errs, fmt.Errorf("chains[%d]: layer %d out of range", i, ch.Layer))
		}
	}
	for layer, mask := range c.CollisionMatrix {
		if !validLayer(layer) {
			errs = append(errs, fmt.Errorf("collisionMatrix: layer %d out of range", layer))
		}
		for _, l := range mask {
			if !validLayer(l) {
				errs = append(errs, fmt.Errorf("collisionMatrix[%d]: layer %d out of range", layer, l))
			}
		}
	}
	return errors.Join(errs...)
}

func validLayer(l int) bool {
	return l >= 0 && l <= 31
}
