package fyne

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/moodviz/moodviz/internal/ports"
	"github.com/moodviz/moodviz/internal/render"
	"github.com/moodviz/moodviz/internal/scene"
)

// MoodCanvas is a raster widget showing the latest frame of the animation.
// The driver draws into it through Surface.
type MoodCanvas struct {
	widget.BaseWidget

	Raster *canvas.Raster

	width  int
	height int

	mu       sync.Mutex
	frame    *scene.Frame
	rendered *scene.Frame
	image    *image.RGBA
}

// NewMoodCanvas creates a canvas whose frames are composed at width x height.
func NewMoodCanvas(width, height int) *MoodCanvas {
	c := &MoodCanvas{
		width:  width,
		height: height,
	}
	c.Raster = canvas.NewRaster(c.draw)
	c.ExtendBaseWidget(c)
	return c
}

// CreateRenderer implements fyne.Widget.
func (c *MoodCanvas) CreateRenderer() fyneapp.WidgetRenderer {
	return widget.NewSimpleRenderer(c.Raster)
}

// MinSize returns the configured frame size.
func (c *MoodCanvas) MinSize() fyneapp.Size {
	return fyneapp.NewSize(float32(c.width), float32(c.height))
}

// Surface returns the drawable the animation driver presents to.
func (c *MoodCanvas) Surface() ports.Surface {
	return canvasSurface{c}
}

// Present stores frame and schedules a repaint on the UI thread.
func (c *MoodCanvas) Present(frame *scene.Frame) {
	c.mu.Lock()
	c.frame = frame
	c.mu.Unlock()

	fyneapp.Do(c.Raster.Refresh)
}

// Frame returns the last presented frame, or nil.
func (c *MoodCanvas) Frame() *scene.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// Reset clears the canvas.
func (c *MoodCanvas) Reset() {
	c.mu.Lock()
	c.frame = nil
	c.rendered = nil
	c.image = nil
	c.mu.Unlock()

	fyneapp.Do(c.Raster.Refresh)
}

// draw is the raster generator. The frame is rasterized once and scaled by
// fyne to the widget's pixel size.
func (c *MoodCanvas) draw(w, h int) image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frame == nil {
		img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
		draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
		return img
	}
	if c.frame != c.rendered {
		c.image = render.Rasterize(c.frame)
		c.rendered = c.frame
	}
	return c.image
}

// canvasSurface adapts MoodCanvas to ports.Surface; the widget's own Size
// method belongs to fyne.CanvasObject.
type canvasSurface struct {
	c *MoodCanvas
}

func (s canvasSurface) Size() (int, int) {
	return s.c.width, s.c.height
}

func (s canvasSurface) Present(frame *scene.Frame) {
	s.c.Present(frame)
}

var _ fyneapp.Widget = (*MoodCanvas)(nil)
