package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/yohamta/donburi"

	"github.com/younwookim/slopewalk/internal/application/replay"
	"github.com/younwookim/slopewalk/internal/application/sim"
	"github.com/younwookim/slopewalk/internal/application/system"
	"github.com/younwookim/slopewalk/internal/domain/collision"
	"github.com/younwookim/slopewalk/internal/domain/geom"
	"github.com/younwookim/slopewalk/internal/infrastructure/chipmunk"
	"github.com/younwookim/slopewalk/internal/infrastructure/config"
	"github.com/younwookim/slopewalk/internal/infrastructure/tiled"
)

// options are the runner settings parsed from flags
type options struct {
	ConfigDir  string
	Stage      string
	ReplayPath string
	Script     string
	Ticks      int
	Count      int
	Caster     string // "world" or "chipmunk"
	PPU        float64
	TracePath  string
}

// TraceFrame holds every character snapshot after one tick
type TraceFrame struct {
	Tick       int               `json:"tick"`
	Characters []system.Snapshot `json:"characters"`
}

// Trace is the JSON document written with -trace
type Trace struct {
	Stage     string       `json:"stage"`
	Caster    string       `json:"caster"`
	Framerate int          `json:"framerate"`
	Frames    []TraceFrame `json:"frames"`
}

// Last returns the final frame, or an empty one
func (t *Trace) Last() TraceFrame {
	if len(t.Frames) == 0 {
		return TraceFrame{}
	}
	return t.Frames[len(t.Frames)-1]
}

// run loads the stage, simulates and returns the trace
func run(opts options) (*Trace, error) {
	var data *replay.ReplayData
	if opts.ReplayPath != "" {
		d, err := replay.LoadReplay(opts.ReplayPath)
		if err != nil {
			return nil, err
		}
		data = d
		if opts.Stage == "" {
			opts.Stage = d.Stage
		}
	}
	if opts.Stage == "" {
		opts.Stage = "demo"
	}

	loader := config.NewLoader(opts.ConfigDir)
	tiled.NewDecoder(opts.PPU).Register(loader)
	cfg, err := loader.LoadAll(opts.Stage)
	if err != nil {
		return nil, err
	}
	stage, err := system.LoadStage(cfg.Stage)
	if err != nil {
		return nil, err
	}

	var caster system.Caster
	switch opts.Caster {
	case "", "world":
		caster = collision.NewWorld(stage)
		opts.Caster = "world"
	case "chipmunk":
		caster = chipmunk.NewCaster(stage)
	default:
		return nil, fmt.Errorf("unknown caster %q", opts.Caster)
	}

	s := sim.New(cfg.Character, caster, stage.Matrix)
	body := system.ProbeShapeFromConfig(cfg.Character.Body)
	spawn := stage.Spawn
	if data != nil {
		spawn = data.Spawn
	}

	count := max(opts.Count, 1)
	for i := 0; i < count; i++ {
		ctrl, err := newController(opts, data)
		if err != nil {
			return nil, err
		}
		// Characters never collide with each other, so they may overlap
		pos := spawn.Add(geom.V(float64(i)*2*body.HalfExtents.X, 0))
		s.Spawn(fmt.Sprintf("c%d", i), body, pos, ctrl)
	}

	trace := &Trace{Stage: stage.Name, Caster: opts.Caster, Framerate: cfg.Character.Physics.Framerate}
	ran := s.Run(opts.Ticks, func(tick int) {
		frame := TraceFrame{Tick: tick}
		s.Each(func(_ donburi.Entity, c *sim.Character) {
			frame.Characters = append(frame.Characters, c.Snapshot)
		})
		trace.Frames = append(trace.Frames, frame)
	})
	log.Printf("Simulated %d ticks on %s with %d character(s)", ran, stage.Name, count)

	if opts.TracePath != "" {
		if err := writeTrace(opts.TracePath, trace); err != nil {
			return nil, err
		}
		log.Printf("Trace saved: %s", opts.TracePath)
	}
	return trace, nil
}

func newController(opts options, data *replay.ReplayData) (sim.Controller, error) {
	switch {
	case data != nil:
		return sim.NewReplayController(*data), nil
	case opts.Script != "":
		steps, err := sim.ParseScript(opts.Script)
		if err != nil {
			return nil, fmt.Errorf("invalid script: %w", err)
		}
		return sim.NewScripted(false, steps...), nil
	}
	return sim.Idle, nil
}

func writeTrace(path string, trace *Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(trace); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return nil
}
