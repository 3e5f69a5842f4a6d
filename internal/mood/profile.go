// Package mood holds the static mood profile table.
package mood

import (
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/scene"
)

// Profile is the visual and behavioural parameter set for one mood.
// Lookup returns copies, so callers may modify the palettes freely.
type Profile struct {
	Mood                domain.Mood
	ParticleCount       int
	Palette             []colorful.Color
	BaseSpeed           float64
	ParticleShape       domain.ParticleShape
	BackgroundPalette   []colorful.Color
	AnimationStyle      domain.AnimationStyle
	IntensityMultiplier float64
}

var profiles = map[domain.Mood]Profile{
	domain.MoodJoy: {
		Mood:                domain.MoodJoy,
		ParticleCount:       80,
		Palette:             scene.MustPalette("#FFD700", "#FF69B4", "#00FF00", "#FF6B6B"),
		BaseSpeed:           3,
		ParticleShape:       domain.ShapeCircle,
		BackgroundPalette:   scene.MustPalette("#FF8C00", "#FFB347", "#FF69B4"),
		AnimationStyle:      domain.StyleSunburst,
		IntensityMultiplier: 1.2,
	},
	domain.MoodEnergy: {
		Mood:                domain.MoodEnergy,
		ParticleCount:       100,
		Palette:             scene.MustPalette("#FF0000", "#FFA500", "#FFFF00"),
		BaseSpeed:           6,
		ParticleShape:       domain.ShapeTriangle,
		BackgroundPalette:   scene.MustPalette("#1A0000", "#8B0000", "#FF4500"),
		AnimationStyle:      domain.StyleVortex,
		IntensityMultiplier: 1.5,
	},
	domain.MoodCalm: {
		Mood:                domain.MoodCalm,
		ParticleCount:       40,
		Palette:             scene.MustPalette("#1E90FF", "#00CED1", "#98FB98"),
		BaseSpeed:           1.5,
		ParticleShape:       domain.ShapeWave,
		BackgroundPalette:   scene.MustPalette("#0B1D3A", "#104E8B", "#00CED1"),
		AnimationStyle:      domain.StyleRipple,
		IntensityMultiplier: 0.8,
	},
	domain.MoodSad: {
		Mood:                domain.MoodSad,
		ParticleCount:       30,
		Palette:             scene.MustPalette("#2F4F4F", "#483D8B", "#696969"),
		BaseSpeed:           1,
		ParticleShape:       domain.ShapeRain,
		BackgroundPalette:   scene.MustPalette("#0F0F1A", "#1C1C2E", "#2F4F4F"),
		AnimationStyle:      domain.StyleFog,
		IntensityMultiplier: 0.6,
	},
}

// Lookup returns the profile for m. Unknown moods get the sad profile.
func Lookup(m domain.Mood) Profile {
	if p, ok := profiles[m]; ok {
		return p.clone()
	}
	return profiles[domain.FallbackMood].clone()
}

// LookupStrict returns the profile for m or domain.ErrUnknownMood.
func LookupStrict(m domain.Mood) (Profile, error) {
	p, ok := profiles[m]
	if !ok {
		return Profile{}, domain.ErrUnknownMood
	}
	return p.clone(), nil
}

func (p Profile) clone() Profile {
	p.Palette = slices.Clone(p.Palette)
	p.BackgroundPalette = slices.Clone(p.BackgroundPalette)
	return p
}

// Moods returns the supported moods in canonical order.
func Moods() []domain.Mood {
	return []domain.Mood{domain.MoodJoy, domain.MoodEnergy, domain.MoodCalm, domain.MoodSad}
}

// Intensity scales energy by the profile multiplier.
// A floor keeps particles and the motif moving at zero energy.
func (p Profile) Intensity(energy float64) float64 {
	i := energy * p.IntensityMultiplier
	if math.IsNaN(i) || i < minIntensity {
		return minIntensity
	}
	return i
}

const minIntensity = 0.1

// FromValence classifies a valence score in [0,1] into a mood.
func FromValence(valence float64) domain.Mood {
	switch {
	case valence > 0.7:
		return domain.MoodJoy
	case valence > 0.5:
		return domain.MoodCalm
	case valence > 0.3:
		return domain.MoodEnergy
	default:
		return domain.MoodSad
	}
}

// Verify FromValence satisfies the domain classifier signature.
var _ domain.Classifier = FromValence
