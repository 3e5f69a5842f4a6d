package mood

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodviz/moodviz/internal/domain"
)

func TestLookup_AllMoodsAreComplete(t *testing.T) {
	inputs := append(Moods(), "unknown", "", "JOY", "melancholy")

	for _, m := range inputs {
		t.Run(string(m), func(t *testing.T) {
			p := Lookup(m)
			assert.Greater(t, p.ParticleCount, 0)
			assert.NotEmpty(t, p.Palette)
			assert.GreaterOrEqual(t, len(p.BackgroundPalette), 3)
			assert.Greater(t, p.BaseSpeed, 0.0)
			assert.Greater(t, p.IntensityMultiplier, 0.0)
		})
	}
}

func TestLookup_UnknownFallsBackToSad(t *testing.T) {
	p := Lookup("unknown")
	assert.Equal(t, domain.MoodSad, p.Mood)
	assert.Equal(t, domain.StyleFog, p.AnimationStyle)
	assert.Equal(t, domain.ShapeRain, p.ParticleShape)
}

func TestLookup_Table(t *testing.T) {
	tests := []struct {
		mood      domain.Mood
		particles int
		shape     domain.ParticleShape
		style     domain.AnimationStyle
	}{
		{domain.MoodJoy, 80, domain.ShapeCircle, domain.StyleSunburst},
		{domain.MoodEnergy, 100, domain.ShapeTriangle, domain.StyleVortex},
		{domain.MoodCalm, 40, domain.ShapeWave, domain.StyleRipple},
		{domain.MoodSad, 30, domain.ShapeRain, domain.StyleFog},
	}

	for _, tt := range tests {
		t.Run(string(tt.mood), func(t *testing.T) {
			p := Lookup(tt.mood)
			assert.Equal(t, tt.mood, p.Mood)
			assert.Equal(t, tt.particles, p.ParticleCount)
			assert.Equal(t, tt.shape, p.ParticleShape)
			assert.Equal(t, tt.style, p.AnimationStyle)
		})
	}
}

func TestLookupStrict(t *testing.T) {
	p, err := LookupStrict(domain.MoodEnergy)
	require.NoError(t, err)
	assert.Equal(t, domain.MoodEnergy, p.Mood)

	_, err = LookupStrict("nope")
	assert.ErrorIs(t, err, domain.ErrUnknownMood)
}

func TestProfile_Intensity(t *testing.T) {
	joy := Lookup(domain.MoodJoy)
	assert.InDelta(t, 1.08, joy.Intensity(0.9), 1e-9)
	assert.InDelta(t, minIntensity, joy.Intensity(0), 1e-9)
	assert.Equal(t, minIntensity, joy.Intensity(math.NaN()))
}

func TestLookup_ReturnsPaletteCopies(t *testing.T) {
	first := Lookup(domain.MoodCalm)
	want := first.Palette[0]

	first.Palette[0] = first.Palette[1]
	first.BackgroundPalette[0] = first.BackgroundPalette[1]

	again := Lookup(domain.MoodCalm)
	assert.Equal(t, want, again.Palette[0])
	assert.NotEqual(t, again.BackgroundPalette[1], again.BackgroundPalette[0])

	strict, err := LookupStrict(domain.MoodCalm)
	require.NoError(t, err)
	assert.Equal(t, want, strict.Palette[0])
}

func TestFromValence(t *testing.T) {
	tests := []struct {
		valence float64
		want    domain.Mood
	}{
		{0.95, domain.MoodJoy},
		{0.71, domain.MoodJoy},
		{0.7, domain.MoodCalm},
		{0.6, domain.MoodCalm},
		{0.5, domain.MoodEnergy},
		{0.31, domain.MoodEnergy},
		{0.3, domain.MoodSad},
		{0, domain.MoodSad},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FromValence(tt.valence), "valence %.2f", tt.valence)
	}
}
