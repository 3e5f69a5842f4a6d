package render

import (
	"sync"

	"github.com/moodviz/moodviz/internal/ports"
	"github.com/moodviz/moodviz/internal/scene"
)

// Offscreen is a surface that keeps the last presented frame in memory.
// It backs headless renders and tests.
type Offscreen struct {
	width  int
	height int

	mu        sync.Mutex
	last      *scene.Frame
	presented int
}

// NewOffscreen creates a width x height surface.
func NewOffscreen(width, height int) *Offscreen {
	return &Offscreen{width: width, height: height}
}

// Size implements ports.Surface.
func (o *Offscreen) Size() (int, int) {
	return o.width, o.height
}

// Present implements ports.Surface.
func (o *Offscreen) Present(frame *scene.Frame) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.last = frame
	o.presented++
}

// Last returns the most recent frame, or nil before the first one.
func (o *Offscreen) Last() *scene.Frame {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}

// Presented returns how many frames were presented.
func (o *Offscreen) Presented() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.presented
}

var _ ports.Surface = (*Offscreen)(nil)
