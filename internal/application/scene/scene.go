// Package scene holds the contract between the playground window and
// whatever it is showing. The game loop in package game owns the ebiten
// callbacks and forwards them to the current Scene; playing.Playing is the
// scene the playground opens with.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the playground
type Scene interface {
	// Update runs once per physics tick of dt seconds, at the character
	// config framerate. Returning a non-nil Scene switches to it after
	// this tick; returning an error stops the window.
	Update(dt float64) (next Scene, err error)

	// Draw paints the stage, the character and its debug overlay.
	// It must not advance the simulation.
	Draw(screen *ebiten.Image)

	// OnEnter runs when the loop switches to this scene.
	OnEnter()

	// OnExit runs when the loop switches away or the window closes.
	// Pending recordings are written here.
	OnExit()
}
