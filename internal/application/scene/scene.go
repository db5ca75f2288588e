// Package scene defines the screens the host drives one fixed tick at a time.
//
// The only screen today is playing, which runs the active campaign's level
// pipeline and shows the win overlay once the last level is cleared.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one host screen. The game loop forwards every tick and draw call
// to the current scene and swaps scenes when Update returns a replacement.
type Scene interface {
	// Update advances the screen by dt seconds (1/60 at the default tick rate).
	// A non-nil next replaces the current scene after this tick. An error
	// stops the host, e.g. a level file that fails to load.
	Update(dt float64) (next Scene, err error)

	// Draw renders the world as seen through the level camera.
	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes current.
	OnEnter()

	// OnExit runs when the scene is replaced or the host shuts down,
	// so pending replay recordings can be flushed.
	OnExit()
}
