// Package render turns scene frames into pixels and vector documents.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/moodviz/moodviz/internal/scene"
)

const (
	minCircleSegments = 12
	maxCircleSegments = 128
	lineFadeSteps     = 8
)

// Rasterize draws frame onto a new RGBA image of the frame's size.
// Commands are composited in order with source-over blending.
func Rasterize(frame *scene.Frame) *image.RGBA {
	w, h := max(frame.Width, 1), max(frame.Height, 1)
	p := &painter{
		dst: image.NewRGBA(image.Rect(0, 0, w, h)),
		vr:  vector.NewRasterizer(w, h),
	}
	draw.Draw(p.dst, p.dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	for i := range frame.Commands {
		p.command(&frame.Commands[i])
	}
	return p.dst
}

type painter struct {
	dst *image.RGBA
	vr  *vector.Rasterizer
}

func (p *painter) command(c *scene.Command) {
	alpha := scene.ClampAlpha(c.Alpha)

	switch c.Kind {
	case scene.KindGradient:
		p.gradient(c.Stops)

	case scene.KindCircle:
		if len(c.Points) == 0 || alpha == 0 {
			return
		}
		ctr, r := c.Points[0], math.Abs(c.Radius)
		if c.Fill {
			p.begin()
			p.circle(ctr, r, false)
		} else {
			half := math.Max(c.Width, 1) / 2
			p.begin()
			p.circle(ctr, r+half, false)
			if r > half {
				p.circle(ctr, r-half, true)
			}
		}
		p.fill(c.Color, alpha)

	case scene.KindPolygon:
		if len(c.Points) < 2 || alpha == 0 {
			return
		}
		p.begin()
		if c.Fill {
			p.path(c.Points)
		} else {
			p.strokes(c.Points, c.Width, true)
		}
		p.fill(c.Color, alpha)

	case scene.KindPolyline:
		if len(c.Points) < 2 || alpha == 0 {
			return
		}
		p.begin()
		p.strokes(c.Points, c.Width, false)
		p.fill(c.Color, alpha)

	case scene.KindLine:
		if len(c.Points) < 2 {
			return
		}
		p.fadingLine(c.Points[0], c.Points[1], c.Width, c.Color, alpha, scene.ClampAlpha(c.EndAlpha))

	case scene.KindText:
		if len(c.Points) == 0 || c.Text == "" {
			return
		}
		p.text(c.Points[0], c.Text, c.Color, alpha)
	}
}

// gradient paints one colour per row; it replaces whatever was below.
func (p *painter) gradient(stops []colorful.Color) {
	b := p.dst.Bounds()
	span := float64(max(b.Dy()-1, 1))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		c := toNRGBA(scene.GradientAt(stops, float64(y)/span), 1)
		draw.Draw(p.dst, image.Rect(b.Min.X, y, b.Max.X, y+1), image.NewUniform(c), image.Point{}, draw.Src)
	}
}

func (p *painter) begin() {
	b := p.dst.Bounds()
	p.vr.Reset(b.Dx(), b.Dy())
}

func (p *painter) fill(c colorful.Color, alpha float64) {
	p.vr.Draw(p.dst, p.dst.Bounds(), image.NewUniform(toNRGBA(c, alpha)), image.Point{})
}

// circle adds a closed circle approximation; reverse winds it the other
// way so it punches a hole in a surrounding path.
func (p *painter) circle(ctr scene.Point, r float64, reverse bool) {
	n := int(2 * math.Pi * r / 3)
	n = min(max(n, minCircleSegments), maxCircleSegments)

	dir := 1.0
	if reverse {
		dir = -1
	}
	p.vr.MoveTo(float32(ctr.X+r), float32(ctr.Y))
	for i := 1; i < n; i++ {
		a := dir * 2 * math.Pi * float64(i) / float64(n)
		p.vr.LineTo(float32(ctr.X+r*math.Cos(a)), float32(ctr.Y+r*math.Sin(a)))
	}
	p.vr.ClosePath()
}

func (p *painter) path(pts []scene.Point) {
	p.vr.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		p.vr.LineTo(float32(pt.X), float32(pt.Y))
	}
	p.vr.ClosePath()
}

// strokes adds one quad per segment. All quads share a winding so their
// overlaps saturate instead of cancelling.
func (p *painter) strokes(pts []scene.Point, width float64, closed bool) {
	for i := 0; i+1 < len(pts); i++ {
		p.segment(pts[i], pts[i+1], width)
	}
	if closed && len(pts) > 2 {
		p.segment(pts[len(pts)-1], pts[0], width)
	}
}

func (p *painter) segment(a, b scene.Point, width float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	half := math.Max(width, 1) / 2
	nx, ny := -dy/length*half, dx/length*half

	p.vr.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	p.vr.LineTo(float32(b.X+nx), float32(b.Y+ny))
	p.vr.LineTo(float32(b.X-nx), float32(b.Y-ny))
	p.vr.LineTo(float32(a.X-nx), float32(a.Y-ny))
	p.vr.ClosePath()
}

// fadingLine approximates a linear alpha ramp with flat sub-segments.
func (p *painter) fadingLine(a, b scene.Point, width float64, c colorful.Color, from, to float64) {
	steps := lineFadeSteps
	if from == to {
		steps = 1
	}
	for i := range steps {
		t0 := float64(i) / float64(steps)
		t1 := float64(i+1) / float64(steps)
		alpha := from + (to-from)*(t0+t1)/2
		if alpha <= 0 {
			continue
		}
		p.begin()
		p.segment(lerp(a, b, t0), lerp(a, b, t1), width)
		p.fill(c, alpha)
	}
}

func (p *painter) text(at scene.Point, s string, c colorful.Color, alpha float64) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(toNRGBA(c, alpha)),
		Face: face,
	}
	width := d.MeasureString(s)
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(math.Round(at.X))) - width/2,
		Y: fixed.I(int(math.Round(at.Y))) + fixed.I(face.Ascent-face.Height/2),
	}
	d.DrawString(s)
}

func lerp(a, b scene.Point, t float64) scene.Point {
	return scene.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func toNRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(scene.ClampAlpha(alpha) * 255))}
}
