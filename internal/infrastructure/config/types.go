package config

import (
	"errors"
	"fmt"
)

// CharacterConfig is the root config for character.json / character.yaml
type CharacterConfig struct {
	Physics   PhysicsSettings `json:"physics" yaml:"physics"`
	Movement  MovementConfig  `json:"movement" yaml:"movement"`
	Jump      JumpConfig      `json:"jump" yaml:"jump"`
	Ground    GroundConfig    `json:"ground" yaml:"ground"`
	Collision CollisionConfig `json:"collision" yaml:"collision"`
	Body      BodyConfig      `json:"body" yaml:"body"`
}

type PhysicsSettings struct {
	Gravity          float64 `json:"gravity" yaml:"gravity"` // world Y acceleration, negative pulls down
	MaxVerticalSpeed float64 `json:"maxVerticalSpeed" yaml:"maxVerticalSpeed"`
	Framerate        int     `json:"framerate" yaml:"framerate"`
}

type MovementConfig struct {
	MoveScale                float64        `json:"moveScale" yaml:"moveScale"`
	AccelerationTimeConstant float64        `json:"accelerationTimeConstant" yaml:"accelerationTimeConstant"`
	MaxHorizontalSpeed       float64        `json:"maxHorizontalSpeed" yaml:"maxHorizontalSpeed"`           // soft cap
	TotalMaxHorizontalSpeed  float64        `json:"totalMaxHorizontalSpeed" yaml:"totalMaxHorizontalSpeed"` // hard cap, reachable downhill
	Friction                 FrictionConfig `json:"friction" yaml:"friction"`
}

// FrictionConfig is the per-tick speed loss
type FrictionConfig struct {
	Ground float64 `json:"ground" yaml:"ground"`
	Air    float64 `json:"air" yaml:"air"`
}

type JumpConfig struct {
	JumpScale float64 `json:"jumpScale" yaml:"jumpScale"`
}

type GroundConfig struct {
	GroundOffset         float64 `json:"groundOffset" yaml:"groundOffset"` // skin kept between body and surfaces
	SnapDistance         float64 `json:"snapDistance" yaml:"snapDistance"`
	MaxNormalAngle       float64 `json:"maxNormalAngle" yaml:"maxNormalAngle"` // degrees
	EdgeAngleBonus       float64 `json:"edgeAngleBonus" yaml:"edgeAngleBonus"` // degrees
	GroundBias           float64 `json:"groundBias" yaml:"groundBias"`
	StickySpeedThreshold float64 `json:"stickySpeedThreshold" yaml:"stickySpeedThreshold"`
	StickyBiasMultiplier float64 `json:"stickyBiasMultiplier" yaml:"stickyBiasMultiplier"`
	AdoptSurfaceLayer    bool    `json:"adoptSurfaceLayer" yaml:"adoptSurfaceLayer"`
	LegProbes            bool    `json:"legProbes" yaml:"legProbes"`
}

type CollisionConfig struct {
	WallRestitution float64 `json:"wallRestitution" yaml:"wallRestitution"`
	MaxRecursion    int     `json:"maxRecursion" yaml:"maxRecursion"`
	HitBufferSize   int     `json:"hitBufferSize" yaml:"hitBufferSize"`
	Layer           int     `json:"layer" yaml:"layer"`
}

// BodyConfig describes the main probe shape
type BodyConfig struct {
	Kind       string  `json:"kind" yaml:"kind"` // "circle" or "box"
	HalfWidth  float64 `json:"halfWidth" yaml:"halfWidth"`
	HalfHeight float64 `json:"halfHeight" yaml:"halfHeight"`
}

// DefaultCharacterConfig returns the reference tuning
func DefaultCharacterConfig() *CharacterConfig {
	return &CharacterConfig{
		Physics: PhysicsSettings{
			Gravity:          -9.81,
			MaxVerticalSpeed: 20,
			Framerate:        60,
		},
		Movement: MovementConfig{
			MoveScale:                8,
			AccelerationTimeConstant: 0.0005,
			MaxHorizontalSpeed:       8,
			TotalMaxHorizontalSpeed:  16,
			Friction: FrictionConfig{
				Ground: 0.08,
				Air:    0.01,
			},
		},
		Jump: JumpConfig{
			JumpScale: 10,
		},
		Ground: GroundConfig{
			GroundOffset:         0.004,
			SnapDistance:         0.05,
			MaxNormalAngle:       60,
			EdgeAngleBonus:       15,
			GroundBias:           2,
			StickySpeedThreshold: 6,
			StickyBiasMultiplier: 2.5,
			AdoptSurfaceLayer:    false,
			LegProbes:            true,
		},
		Collision: CollisionConfig{
			WallRestitution: 0,
			MaxRecursion:    3,
			HitBufferSize:   16,
			Layer:           0,
		},
		Body: BodyConfig{
			Kind:       "circle",
			HalfWidth:  0.5,
			HalfHeight: 0.5,
		},
	}
}

// Validate reports every inconsistent setting
func (c *CharacterConfig) Validate() error {
	var errs []error
	if c.Physics.Framerate <= 0 {
		errs = append(errs, fmt.Errorf("physics.framerate must be positive, got %d", c.Physics.Framerate))
	}
	if c.Physics.MaxVerticalSpeed <= 0 {
		errs = append(errs, fmt.Errorf("physics.maxVerticalSpeed must be positive, got %v", c.Physics.MaxVerticalSpeed))
	}
	if c.Movement.MaxHorizontalSpeed <= 0 {
		errs = append(errs, fmt.Errorf("movement.maxHorizontalSpeed must be positive, got %v", c.Movement.MaxHorizontalSpeed))
	}
	if c.Movement.TotalMaxHorizontalSpeed < c.Movement.MaxHorizontalSpeed {
		errs = append(errs, fmt.Errorf("movement.totalMaxHorizontalSpeed %v is below maxHorizontalSpeed %v",
			c.Movement.TotalMaxHorizontalSpeed, c.Movement.MaxHorizontalSpeed))
	}
	if c.Movement.Friction.Ground < 0 || c.Movement.Friction.Air < 0 {
		errs = append(errs, errors.New("movement.friction must not be negative"))
	}
	if c.Ground.GroundOffset < 0 || c.Ground.SnapDistance < 0 {
		errs = append(errs, errors.New("ground.groundOffset and ground.snapDistance must not be negative"))
	}
	if c.Ground.MaxNormalAngle <= 0 || c.Ground.MaxNormalAngle >= 180 {
		errs = append(errs, fmt.Errorf("ground.maxNormalAngle must be in (0, 180), got %v", c.Ground.MaxNormalAngle))
	}
	if c.Collision.MaxRecursion < 0 {
		errs = append(errs, fmt.Errorf("collision.maxRecursion must not be negative, got %d", c.Collision.MaxRecursion))
	}
	if c.Collision.HitBufferSize <= 0 {
		errs = append(errs, fmt.Errorf("collision.hitBufferSize must be positive, got %d", c.Collision.HitBufferSize))
	}
	if c.Collision.Layer < 0 || c.Collision.Layer > 31 {
		errs = append(errs, fmt.Errorf("collision.layer must be in [0, 31], got %d", c.Collision.Layer))
	}
	if c.Collision.WallRestitution < 0 || c.Collision.WallRestitution > 1 {
		errs = append(errs, fmt.Errorf("collision.wallRestitution must be in [0, 1], got %v", c.Collision.WallRestitution))
	}
	switch c.Body.Kind {
	case "circle", "box":
	default:
		errs = append(errs, fmt.Errorf("body.kind must be circle or box, got %q", c.Body.Kind))
	}
	if c.Body.HalfWidth <= 0 || (c.Body.Kind == "box" && c.Body.HalfHeight <= 0) {
		errs = append(errs, errors.New("body extents must be positive"))
	}
	return errors.Join(errs...)
}

// DT returns the fixed timestep
func (c *CharacterConfig) DT() float64 {
	return 1.0 / float64(c.Physics.Framerate)
}
