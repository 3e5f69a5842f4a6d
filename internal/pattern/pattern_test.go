package pattern

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/scene"
)

var testPalette = scene.MustPalette("#FFD700", "#FF69B4", "#00FF00")

func TestFor_Dispatch(t *testing.T) {
	tests := []struct {
		style domain.AnimationStyle
		count int
		kind  scene.Kind
	}{
		{domain.StyleSunburst, 16, scene.KindLine},
		{domain.StyleVortex, 8, scene.KindPolygon},
		{domain.StyleRipple, 5, scene.KindCircle},
		{domain.StyleFog, 12, scene.KindCircle},
		{domain.StylePlain, 1, scene.KindCircle},
		{"kaleidoscope", 1, scene.KindCircle},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			cmds := For(tt.style)(300, 300, 100, 1.5, testPalette)
			require.Len(t, cmds, tt.count)
			for _, c := range cmds {
				assert.Equal(t, tt.kind, c.Kind)
			}
		})
	}
}

func TestRoutines_ArePure(t *testing.T) {
	for _, style := range Styles() {
		t.Run(string(style), func(t *testing.T) {
			fn := For(style)
			a := fn(300, 300, 120, 2.75, testPalette)
			b := fn(300, 300, 120, 2.75, testPalette)
			assert.Equal(t, a, b)
		})
	}
}

func TestRoutines_EmptyPaletteFallsBackToWhite(t *testing.T) {
	for _, style := range Styles() {
		cmds := For(style)(0, 0, 50, 0, nil)
		require.NotEmpty(t, cmds)
		assert.Equal(t, scene.White, cmds[0].Color, string(style))
	}
}

func TestSunburst_Geometry(t *testing.T) {
	const size, tm = 100.0, 0.0
	cmds := Sunburst(0, 0, size, tm, testPalette)

	for i, c := range cmds {
		end := c.Points[1]
		length := math.Hypot(end.X, end.Y)
		want := size * (0.7 + 0.3*math.Sin(float64(i)))
		assert.InDelta(t, want, length, 1e-9, "ray %d", i)
		assert.Equal(t, 1.0, c.Alpha)
		assert.Equal(t, 0.0, c.EndAlpha)
		assert.Equal(t, testPalette[i%3], c.Color)
	}

	// First ray rotates rigidly with 0.5*t
	rotated := Sunburst(0, 0, size, 1, testPalette)[0].Points[1]
	assert.InDelta(t, 0.5, math.Atan2(rotated.Y, rotated.X), 1e-9)
}

func TestVortex_RingsAndVertices(t *testing.T) {
	const size = 200.0
	cmds := Vortex(10, 20, size, 0.3, testPalette)

	for k, c := range cmds {
		assert.Len(t, c.Points, 6+3*k)
		assert.False(t, c.Fill, "rings are stroked")
		r := math.Hypot(c.Points[0].X-10, c.Points[0].Y-20)
		assert.InDelta(t, size*(0.2+0.1*float64(k)), r, 1e-9)
		assert.Equal(t, testPalette[k%3], c.Color)
	}
}

func TestRipple_RadiusAndFade(t *testing.T) {
	const size = 100.0
	cmds := Ripple(0, 0, size, 1, testPalette)

	for k, c := range cmds {
		travel := math.Mod(20+30*float64(k), 100)
		assert.InDelta(t, 0.3*size+travel, c.Radius, 1e-9)
		assert.InDelta(t, 1-travel/100, c.Alpha, 1e-9)
		assert.False(t, c.Fill)
	}

	// Rings wrap back to the inner radius
	wrapped := Ripple(0, 0, size, 5, testPalette)[0]
	assert.InDelta(t, 0.3*size, wrapped.Radius, 1e-9)
	assert.InDelta(t, 1.0, wrapped.Alpha, 1e-9)
}

func TestFog_Motes(t *testing.T) {
	const size, tm = 100.0, 0.4
	cmds := Fog(0, 0, size, tm, testPalette)

	for i, c := range cmds {
		fi := float64(i)
		dist := math.Hypot(c.Points[0].X, c.Points[0].Y)
		assert.InDelta(t, 0.4*size+0.1*size*math.Sin(tm+fi), dist, 1e-9)
		assert.InDelta(t, 0.3+0.2*math.Sin(2*tm+fi), c.Alpha, 1e-9)
		assert.True(t, c.Fill)
	}
}

func TestPlain(t *testing.T) {
	palette := []colorful.Color{{R: 0.2, G: 0.4, B: 0.6}}
	cmds := Plain(5, 6, 42, 99, palette)
	require.Len(t, cmds, 1)
	assert.Equal(t, 42.0, cmds[0].Radius)
	assert.Equal(t, palette[0], cmds[0].Color)
	assert.True(t, cmds[0].Fill)
}
