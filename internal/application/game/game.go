// Package game provides the ebiten loop that drives scenes with a fixed step.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/ridge/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
}

// New creates a Game running initialScene at fps updates per second.
// The initial scene's OnEnter is called immediately. fps <= 0 means 60.
func New(initialScene scene.Scene, screenW, screenH, fps int) *Game {
	if fps <= 0 {
		fps = 60
	}
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(fps),
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

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

// Layout returns the logical screen size.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// DT returns the fixed step passed to scenes
func (g *Game) DT() float64 {
	return g.dt
}

// Close exits the current scene. ebiten.RunGame does not do this itself.
func (g *Game) Close() {
	g.current.OnExit()
}
