// Package playing provides the playground scene: one keyboard or replay
// driven character on a stage, with pause, single step and recording.
package playing

import (
	"log"

	"github.com/yohamta/donburi"

	"github.com/younwookim/slopewalk/internal/application/replay"
	"github.com/younwookim/slopewalk/internal/application/scene"
	"github.com/younwookim/slopewalk/internal/application/sim"
	"github.com/younwookim/slopewalk/internal/application/state"
	"github.com/younwookim/slopewalk/internal/application/system"
	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
	"github.com/younwookim/slopewalk/internal/infrastructure/config"
)

// Options configures the scene
type Options struct {
	StageName     string
	Stage         *entity.Stage
	Character     *config.CharacterConfig
	Caster        system.Caster
	Replay        *replay.ReplayData // nil plays from the keyboard
	RecordPath    string             // empty disables recording
	ScreenW       int
	ScreenH       int
	PixelsPerUnit float64
	// Input reads the keyboard; nil reads it through ebiten
	Input func() system.InputState
}

// Playing is the playground scene
type Playing struct {
	opts     Options
	cfg      *config.CharacterConfig
	sim      *sim.Simulation
	player   donburi.Entity
	control  *state.Control
	recorder *replay.Recorder
	input    func() system.InputState
	last     system.InputState
	camera   geom.Vec2
}

// New creates a new Playing scene
func New(opts Options) *Playing {
	if opts.PixelsPerUnit <= 0 {
		opts.PixelsPerUnit = 16
	}
	cfg := *opts.Character

	p := &Playing{
		opts:  opts,
		cfg:   &cfg,
		input: opts.Input,
	}
	if p.input == nil {
		p.input = NewKeyboard().Read
	}
	p.restart()
	return p
}

// restart rebuilds the simulation from the spawn point
func (p *Playing) restart() {
	p.sim = sim.New(p.cfg, p.opts.Caster, p.opts.Stage.Matrix)

	spawn := p.opts.Stage.Spawn
	var ctrl sim.Controller = sim.ControllerFunc(p.keyboardIntents)
	initial := state.StateRunning
	if p.opts.Replay != nil {
		spawn = p.opts.Replay.Spawn
		ctrl = sim.NewReplayController(*p.opts.Replay)
		initial = state.StateReplaying
	}

	p.player = p.sim.Spawn("player", system.ProbeShapeFromConfig(p.cfg.Body), spawn, ctrl)
	p.control = state.NewControl(initial)
	p.camera = spawn

	if p.opts.RecordPath != "" && p.opts.Replay == nil {
		p.recorder = replay.NewRecorder(p.opts.StageName, spawn, p.cfg.Physics.Framerate)
		log.Printf("Recording enabled: %s", p.opts.RecordPath)
	}
}

// keyboardIntents turns the latest keys into intents, recording them
func (p *Playing) keyboardIntents(_ int, last system.Snapshot) []system.Intent {
	intents := system.IntentsFromInput(p.last)
	if p.last.NextLayer {
		layer := (last.Layer + 1) % 4
		intents = append(intents, system.LayerIntent{Layer: layer})
		if p.recorder != nil {
			p.recorder.SetLayer(layer)
		}
	}
	if p.recorder != nil {
		p.recorder.SetForce(system.ForceFromInput(p.last))
	}
	return intents
}

// Update proceeds the scene state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	in := p.input()

	if in.Pause {
		p.control.TogglePause()
	}
	if in.Step {
		p.control.RequestStep()
	}
	if in.Record {
		p.saveRecording()
	}
	if in.Reset {
		p.saveRecording()
		p.restart()
		return nil, nil
	}

	if !p.control.ShouldTick() {
		return nil, nil
	}

	p.last = in
	p.sim.Step()
	if p.recorder != nil {
		p.recorder.EndFrame()
	}
	p.last.NextLayer = false

	if c, ok := p.Player().Controller.(sim.Finite); ok && c.Done() {
		p.control.FinishReplay()
	}

	p.camera = p.Player().Snapshot.Position
	return nil, nil
}

// ApplyConfig swaps in new character tuning. A changed body shape
// restarts the scene; anything else applies from the next tick.
func (p *Playing) ApplyConfig(cfg *config.CharacterConfig) {
	bodyChanged := cfg.Body != p.cfg.Body || cfg.Ground.LegProbes != p.cfg.Ground.LegProbes
	*p.cfg = *cfg
	if bodyChanged {
		p.restart()
	}
	log.Printf("Character config applied (restart: %v)", bodyChanged)
}

// Player returns the player character
func (p *Playing) Player() *sim.Character {
	return p.sim.Character(p.player)
}

// Config returns the live character tuning
func (p *Playing) Config() *config.CharacterConfig {
	return p.cfg
}

// State returns the pause state
func (p *Playing) State() state.GameState {
	return p.control.State()
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	if err := p.recorder.Save(p.opts.RecordPath); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", p.opts.RecordPath, p.recorder.FrameCount())
	}
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}
