// Package scene defines the Scene interface for sandbox screens.
//
// The game loop owns timing; a scene only sees the fixed step it is given.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the sandbox.
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update advances the scene by dt seconds, always the same value for a
	// given run. It returns the next scene, or nil to stay. A non-nil error
	// ends the program.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called each time the scene becomes current.
	OnEnter()

	// OnExit is called when leaving the scene. Scenes release watchers and
	// flush recordings here.
	OnExit()
}
