// Package scene defines the drawing command model shared by the pattern
// routines, the particle system and the output backends.
//
// A Frame is a flat, ordered list of Commands. Producers never touch pixels;
// backends (raster, SVG) interpret commands in order.
package scene

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Kind identifies the primitive a Command draws.
type Kind uint8

// Primitive kinds.
const (
	KindGradient Kind = iota // Full-frame vertical gradient through Stops
	KindCircle               // Circle at Points[0] with Radius
	KindPolygon              // Closed polygon through Points
	KindPolyline             // Open polyline through Points
	KindLine                 // Segment Points[0]→Points[1], alpha fades Alpha→EndAlpha
	KindText                 // Text centred on Points[0]
)

// String returns the primitive name.
func (k Kind) String() string {
	switch k {
	case KindGradient:
		return "gradient"
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	case KindPolyline:
		return "polyline"
	case KindLine:
		return "line"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Point is a position in canvas units.
type Point struct {
	X, Y float64
}

// Command is a single drawing primitive.
type Command struct {
	Kind     Kind
	Points   []Point
	Radius   float64
	Width    float64 // Stroke width; ignored when Fill is set
	Fill     bool
	Color    colorful.Color
	Alpha    float64
	EndAlpha float64 // Only used by KindLine
	Stops    []colorful.Color
	Text     string
}

// Frame is one composited animation frame.
type Frame struct {
	Width    int
	Height   int
	Commands []Command
}

// Add appends commands to the frame.
func (f *Frame) Add(cmds ...Command) {
	f.Commands = append(f.Commands, cmds...)
}

// Count returns the number of commands of the given kind.
func (f *Frame) Count(kind Kind) int {
	n := 0
	for i := range f.Commands {
		if f.Commands[i].Kind == kind {
			n++
		}
	}
	return n
}

// Gradient returns a full-frame vertical gradient command.
func Gradient(stops []colorful.Color) Command {
	return Command{Kind: KindGradient, Stops: stops, Alpha: 1}
}

// FilledCircle returns a filled circle command.
func FilledCircle(cx, cy, r float64, c colorful.Color, alpha float64) Command {
	return Command{Kind: KindCircle, Points: []Point{{cx, cy}}, Radius: r, Fill: true, Color: c, Alpha: alpha}
}

// StrokedCircle returns a circle outline command.
func StrokedCircle(cx, cy, r, width float64, c colorful.Color, alpha float64) Command {
	return Command{Kind: KindCircle, Points: []Point{{cx, cy}}, Radius: r, Width: width, Color: c, Alpha: alpha}
}

// Polygon returns a closed polygon command.
func Polygon(points []Point, fill bool, width float64, c colorful.Color, alpha float64) Command {
	return Command{Kind: KindPolygon, Points: points, Fill: fill, Width: width, Color: c, Alpha: alpha}
}

// Polyline returns an open polyline command.
func Polyline(points []Point, width float64, c colorful.Color, alpha float64) Command {
	return Command{Kind: KindPolyline, Points: points, Width: width, Color: c, Alpha: alpha}
}

// Line returns a segment whose alpha fades linearly from alpha to endAlpha.
func Line(x1, y1, x2, y2, width float64, c colorful.Color, alpha, endAlpha float64) Command {
	return Command{
		Kind:     KindLine,
		Points:   []Point{{x1, y1}, {x2, y2}},
		Width:    width,
		Color:    c,
		Alpha:    alpha,
		EndAlpha: endAlpha,
	}
}

// Text returns a centred text command.
func Text(x, y float64, s string, c colorful.Color) Command {
	return Command{Kind: KindText, Points: []Point{{x, y}}, Text: s, Color: c, Alpha: 1}
}
