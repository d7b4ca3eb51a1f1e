// Package game provides the ebiten loop that hosts the playground scenes.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/slopewalk/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	hooks   []func(scene.Scene) error
}

// New creates a new Game with the given initial scene ticking at framerate.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH, framerate int) *Game {
	if framerate <= 0 {
		framerate = 60
	}
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(framerate),
	}
	g.current.OnEnter()
	return g
}

// OnFrame registers a hook run before every scene update, on the game
// goroutine. A hook error terminates the game.
func (g *Game) OnFrame(hook func(current scene.Scene) error) {
	g.hooks = append(g.hooks, hook)
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	for _, hook := range g.hooks {
		if err := hook(g.current); err != nil {
			return err
		}
	}

	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}

// DT returns the delta time passed to scene updates
func (g *Game) DT() float64 {
	return g.dt
}

// Close exits the current scene, after ebiten.RunGame returns
func (g *Game) Close() {
	g.current.OnExit()
}
