package game

import (
	"github.com/Onimix/ONIMISIV/pkg/render"
)

// Scene represents a mounted simulation view (particle background, minigame, landing page).
// Simulation work runs in frame callbacks registered on the FrameLoop;
// Draw only renders the current state.
type Scene interface {
	// Draw renders the scene to the provided canvas.
	Draw(canvas render.Canvas)

	// Dispose releases every subscription the scene registered
	// (frame chain, resize, input). Called exactly once when the scene is unmounted.
	Dispose()
}
