package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// White is used when a palette is empty.
var White = colorful.Color{R: 1, G: 1, B: 1}

// MustPalette parses hex colour strings. It panics on malformed input and
// is meant for static tables only.
func MustPalette(hexes ...string) []colorful.Color {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("scene: bad palette colour " + h + ": " + err.Error())
		}
		out[i] = c
	}
	return out
}

// Pick returns palette[i mod len(palette)], or White for an empty palette.
func Pick(palette []colorful.Color, i int) colorful.Color {
	if len(palette) == 0 {
		return White
	}
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// GradientAt samples a piecewise-linear gradient through stops at pos in [0,1].
func GradientAt(stops []colorful.Color, pos float64) colorful.Color {
	switch len(stops) {
	case 0:
		return colorful.Color{}
	case 1:
		return stops[0]
	}
	pos = math.Max(0, math.Min(1, pos))
	scaled := pos * float64(len(stops)-1)
	i := int(scaled)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	return stops[i].BlendRgb(stops[i+1], scaled-float64(i)).Clamped()
}

// ClampAlpha limits an alpha value to [0,1].
func ClampAlpha(a float64) float64 {
	if math.IsNaN(a) {
		return 0
	}
	return math.Max(0, math.Min(1, a))
}
