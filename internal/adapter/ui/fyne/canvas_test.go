package fyne

import (
	"image"
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodviz/moodviz/internal/logger"
	"github.com/moodviz/moodviz/internal/scene"
)

func solidFrame(w, h int, c colorful.Color) *scene.Frame {
	f := &scene.Frame{Width: w, Height: h}
	f.Add(scene.Gradient([]colorful.Color{c, c}))
	return f
}

func TestMoodCanvas_Surface(t *testing.T) {
	test.NewTempApp(t)
	c := NewMoodCanvas(40, 30)

	w, h := c.Surface().Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)
	assert.Equal(t, float32(40), c.MinSize().Width)
	assert.Equal(t, float32(30), c.MinSize().Height)
}

func TestMoodCanvas_BlankBeforeFirstFrame(t *testing.T) {
	test.NewTempApp(t)
	c := NewMoodCanvas(40, 30)

	img := c.draw(10, 8)
	assert.Equal(t, image.Rect(0, 0, 10, 8), img.Bounds())
	r, g, b, a := img.At(5, 5).RGBA()
	assert.Equal(t, []uint32{0, 0, 0, 0xffff}, []uint32{r, g, b, a})
}

func TestMoodCanvas_PresentRasterizesOnce(t *testing.T) {
	test.NewTempApp(t)
	c := NewMoodCanvas(40, 30)

	frame := solidFrame(40, 30, colorful.Color{R: 1})
	c.Surface().Present(frame)
	require.Same(t, frame, c.Frame())

	img := c.draw(80, 60)
	assert.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds(), "fyne scales the frame")
	rgba, ok := img.(*image.RGBA)
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba.RGBAAt(20, 15))

	assert.Same(t, img, c.draw(80, 60), "unchanged frame reuses the image")

	c.Present(solidFrame(40, 30, colorful.Color{G: 1}))
	next := c.draw(80, 60).(*image.RGBA)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, next.RGBAAt(20, 15))
}

func TestMoodCanvas_Reset(t *testing.T) {
	test.NewTempApp(t)
	c := NewMoodCanvas(40, 30)

	c.Present(solidFrame(40, 30, colorful.Color{B: 1}))
	c.Reset()

	assert.Nil(t, c.Frame())
	assert.Equal(t, image.Rect(0, 0, 5, 5), c.draw(5, 5).Bounds())
}

func TestMoodCanvas_Renders(t *testing.T) {
	test.NewTempApp(t)
	c := NewMoodCanvas(40, 30)
	c.Present(solidFrame(40, 30, colorful.Color{R: 1}))

	w := test.NewWindow(c)
	defer w.Close()
	assert.NotNil(t, w.Canvas().Capture())
}

func TestAnimationScheduler_StartStop(t *testing.T) {
	test.NewTempApp(t)
	s := NewAnimationScheduler(logger.NewTestLogger())

	assert.NotPanics(t, func() {
		s.Start()
		s.Start()
		s.Stop()
		s.Stop()
	})

	h := s.RequestFrame(func() {})
	assert.Equal(t, 1, s.Pending())
	s.CancelFrame(h)
	assert.Equal(t, 0, s.Pending())
}
