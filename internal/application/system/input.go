package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSystem reads the keyboard
type InputSystem struct {
	// Keys can be rebound before the first frame.
	Keys KeyMap
}

// KeyMap binds each input to its keys
type KeyMap struct {
	Left, Right, Down, Jump []ebiten.Key
}

// DefaultKeyMap is WASD plus the arrow keys, with space also jumping
var DefaultKeyMap = KeyMap{
	Left:  []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
	Right: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
	Down:  []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
	Jump:  []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp, ebiten.KeySpace},
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{Keys: DefaultKeyMap}
}

// InputState holds the current input state
type InputState struct {
	Left        bool `json:"l,omitempty"`
	Right       bool `json:"r,omitempty"`
	Down        bool `json:"d,omitempty"`
	Jump        bool `json:"j,omitempty"`
	JumpPressed bool `json:"jp,omitempty"`
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:        anyPressed(s.Keys.Left),
		Right:       anyPressed(s.Keys.Right),
		Down:        anyPressed(s.Keys.Down),
		Jump:        anyPressed(s.Keys.Jump),
		JumpPressed: anyJustPressed(s.Keys.Jump),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
