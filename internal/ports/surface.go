// Package ports define the drawing surface abstraction.
package ports

import (
	"github.com/moodviz/moodviz/internal/scene"
)

// Surface is the drawable the animation driver owns while a session runs.
// It abstracts the host (fyne raster, websocket stream, offscreen image)
// so the driver can be tested without a display.
type Surface interface {
	// Size returns the drawable extent in canvas units.
	// A zero or negative extent means the surface is unavailable.
	Size() (width, height int)

	// Present hands a composited frame to the host.
	// The driver builds a fresh frame every tick, so implementations may keep it.
	// Present is called from the scheduler's callback and must not block.
	Present(frame *scene.Frame)
}
