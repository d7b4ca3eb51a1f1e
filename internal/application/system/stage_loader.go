package system

import (
	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
	"github.com/younwookim/slopewalk/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stage := &entity.Stage{
		Name:  cfg.Name,
		Spawn: point(cfg.Spawn),
	}

	for _, sc := range cfg.Surfaces {
		s := stage.AddSegment(point(sc.A), point(sc.B), entity.Layer(sc.Layer))
		s.Trigger = sc.Trigger
		s.OneWay = oneWay(sc.OneWay)
	}

	for _, ch := range cfg.Chains {
		first := len(stage.Surfaces)
		points := make([]geom.Vec2, len(ch.Points))
		for i, p := range ch.Points {
			points[i] = point(p)
		}
		stage.AddChain(points, entity.Layer(ch.Layer), ch.Closed)

		for i := first; i < len(stage.Surfaces); i++ {
			stage.Surfaces[i].Trigger = ch.Trigger
			stage.Surfaces[i].OneWay = oneWay(ch.OneWay)
		}
	}

	if len(cfg.CollisionMatrix) > 0 {
		stage.Matrix = make(entity.CollisionMatrix, len(cfg.CollisionMatrix))
		for layer, others := range cfg.CollisionMatrix {
			var mask entity.LayerMask
			for _, o := range others {
				mask |= entity.MaskOf(entity.Layer(o))
			}
			stage.Matrix[entity.Layer(layer)] = mask
		}
	}

	return stage, nil
}

func point(p config.PointConfig) geom.Vec2 {
	return geom.V(p.X, p.Y)
}

// oneWay gives every surface its own copy so platforms can be edited independently
func oneWay(c *config.OneWayConfig) *entity.OneWay {
	if c == nil {
		return nil
	}
	return &entity.OneWay{Rotation: c.Rotation, SurfaceArc: c.Arc}
}
