// Package pattern provides the focal motif routines, one per animation style.
//
// Every routine is a pure function of its arguments: calling it twice with the
// same centre, size, time and palette yields identical commands. Motion comes
// only from the caller advancing t.
package pattern

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/scene"
)

// Func renders a motif centred on (cx, cy).
type Func func(cx, cy, size, t float64, palette []colorful.Color) []scene.Command

const (
	sunburstRays  = 16
	sunburstWidth = 4.0

	vortexRings     = 8
	vortexBaseVerts = 6
	vortexVertsStep = 3
	vortexWidth     = 2.0

	rippleRings  = 5
	rippleSpeed  = 20.0
	rippleOffset = 30.0
	rippleReset  = 100.0
	rippleWidth  = 3.0

	fogMotes      = 12
	fogMoteRadius = 0.12 // relative to size

	twoPi = 2 * math.Pi
)

// For returns the routine for style. Unknown styles resolve to Plain.
func For(style domain.AnimationStyle) Func {
	switch style {
	case domain.StyleSunburst:
		return Sunburst
	case domain.StyleVortex:
		return Vortex
	case domain.StyleRipple:
		return Ripple
	case domain.StyleFog:
		return Fog
	default:
		return Plain
	}
}

// Styles returns all animation styles with a dedicated routine.
func Styles() []domain.AnimationStyle {
	return []domain.AnimationStyle{
		domain.StyleSunburst,
		domain.StyleVortex,
		domain.StyleRipple,
		domain.StyleFog,
		domain.StylePlain,
	}
}

// Sunburst draws rays that breathe in length and rotate rigidly with t.
// Each ray fades from opaque at the centre to transparent at its tip.
func Sunburst(cx, cy, size, t float64, palette []colorful.Color) []scene.Command {
	out := make([]scene.Command, 0, sunburstRays)
	spin := 0.5 * t

	for i := range sunburstRays {
		fi := float64(i)
		angle := fi*twoPi/sunburstRays + spin
		length := size * (0.7 + 0.3*math.Sin(3*t+fi))

		x2 := cx + math.Cos(angle)*length
		y2 := cy + math.Sin(angle)*length
		out = append(out, scene.Line(cx, cy, x2, y2, sunburstWidth, scene.Pick(palette, i), 1, 0))
	}
	return out
}

// Vortex draws concentric stroked polygons. Ring k has 6+3k vertices and
// turns at a rate proportional to k+1, so outer rings spin faster.
func Vortex(cx, cy, size, t float64, palette []colorful.Color) []scene.Command {
	out := make([]scene.Command, 0, vortexRings)

	for k := range vortexRings {
		fk := float64(k)
		radius := size * (0.2 + 0.1*fk)
		verts := vortexBaseVerts + vortexVertsStep*k
		phase := t * (fk + 1) * 0.5

		pts := make([]scene.Point, verts)
		for v := range pts {
			a := phase + float64(v)*twoPi/float64(verts)
			pts[v] = scene.Point{X: cx + math.Cos(a)*radius, Y: cy + math.Sin(a)*radius}
		}
		out = append(out, scene.Polygon(pts, false, vortexWidth, scene.Pick(palette, k), 1))
	}
	return out
}

// Ripple draws rings that expand outward and fade, wrapping back to the
// centre every rippleReset units.
func Ripple(cx, cy, size, t float64, palette []colorful.Color) []scene.Command {
	out := make([]scene.Command, 0, rippleRings)

	for k := range rippleRings {
		travel := math.Mod(rippleSpeed*t+rippleOffset*float64(k), rippleReset)
		if travel < 0 {
			travel += rippleReset
		}
		radius := 0.3*size + travel
		alpha := 1 - travel/rippleReset
		out = append(out, scene.StrokedCircle(cx, cy, radius, rippleWidth, scene.Pick(palette, k), alpha))
	}
	return out
}

// Fog draws soft motes on a ring whose distance and opacity oscillate.
func Fog(cx, cy, size, t float64, palette []colorful.Color) []scene.Command {
	out := make([]scene.Command, 0, fogMotes)

	for i := range fogMotes {
		fi := float64(i)
		angle := fi * twoPi / fogMotes
		dist := 0.4*size + 0.1*size*math.Sin(t+fi)
		alpha := 0.3 + 0.2*math.Sin(2*t+fi)

		x := cx + math.Cos(angle)*dist
		y := cy + math.Sin(angle)*dist
		out = append(out, scene.FilledCircle(x, y, math.Abs(size)*fogMoteRadius, scene.Pick(palette, i), alpha))
	}
	return out
}

// Plain draws a single filled disc.
func Plain(cx, cy, size, _ float64, palette []colorful.Color) []scene.Command {
	return []scene.Command{scene.FilledCircle(cx, cy, math.Abs(size), scene.Pick(palette, 0), 1)}
}
