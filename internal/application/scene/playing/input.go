package playing

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/slopewalk/internal/application/system"
)

// Keyboard reads the playground keys through ebiten
type Keyboard struct{}

// NewKeyboard creates a new keyboard reader
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Read returns the current key state. Movement keys are held, the
// playground controls fire once per press.
func (k *Keyboard) Read() system.InputState {
	return system.InputState{
		Left:      ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:     ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:      ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Pause:     inpututil.IsKeyJustPressed(ebiten.KeyP),
		Step:      inpututil.IsKeyJustPressed(ebiten.KeyN),
		Reset:     inpututil.IsKeyJustPressed(ebiten.KeyR),
		Record:    inpututil.IsKeyJustPressed(ebiten.KeyF9),
		NextLayer: inpututil.IsKeyJustPressed(ebiten.KeyL),
	}
}
