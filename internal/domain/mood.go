// Package domain defines the core types of the mood visualizer.
// These types are independent of any rendering host or transport.
package domain

import "strings"

// Mood is the emotional classification of a song.
type Mood string

// Supported moods.
const (
	MoodJoy    Mood = "joy"
	MoodEnergy Mood = "energy"
	MoodCalm   Mood = "calm"
	MoodSad    Mood = "sad"
)

// DefaultMood is used when no data has been resolved yet.
const DefaultMood = MoodCalm

// FallbackMood is substituted for any unrecognized mood.
const FallbackMood = MoodSad

// ParseMood converts a string into a known Mood.
// Unknown values return FallbackMood and false.
func ParseMood(s string) (Mood, bool) {
	switch m := Mood(strings.ToLower(strings.TrimSpace(s))); m {
	case MoodJoy, MoodEnergy, MoodCalm, MoodSad:
		return m, true
	default:
		return FallbackMood, false
	}
}

// Valid reports whether m is one of the supported moods.
func (m Mood) Valid() bool {
	switch m {
	case MoodJoy, MoodEnergy, MoodCalm, MoodSad:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (m Mood) String() string {
	return string(m)
}

// ParticleShape selects how particles are drawn.
type ParticleShape string

// Available particle shapes.
const (
	ShapeCircle   ParticleShape = "circle"
	ShapeTriangle ParticleShape = "triangle"
	ShapeWave     ParticleShape = "wave"
	ShapeRain     ParticleShape = "rain"
)

// AnimationStyle selects the focal motif routine.
type AnimationStyle string

// Available animation styles.
const (
	StyleSunburst AnimationStyle = "sunburst"
	StyleVortex   AnimationStyle = "vortex"
	StyleRipple   AnimationStyle = "ripple"
	StyleFog      AnimationStyle = "fog"
	StylePlain    AnimationStyle = "plain"
)

// RunState is the lifecycle state of an animation session.
type RunState int

// Session states.
const (
	StateIdle RunState = iota
	StateRunning
	StateStopped
)

// String returns a human-readable state name.
func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
