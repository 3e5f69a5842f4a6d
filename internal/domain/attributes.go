package domain

import (
	"fmt"
	"math"
)

// Attribute defaults applied when the data-fetch layer omits a value.
const (
	DefaultTempo  = 100.0
	DefaultEnergy = 0.5
)

// SongAttributes is the record produced by the data-fetch collaborator.
// It is the only input the visualization core consumes.
type SongAttributes struct {
	Mood    string   `json:"mood"`
	Tempo   float64  `json:"tempo,omitempty"`
	Energy  *float64 `json:"energy,omitempty"`
	Valence *float64 `json:"valence,omitempty"`
	Title   string   `json:"name,omitempty"`
	Artist  string   `json:"artist,omitempty"`
}

// SessionParams are normalized attributes, always safe to animate.
type SessionParams struct {
	Mood   Mood    `json:"mood"`
	Tempo  float64 `json:"tempo"`
	Energy float64 `json:"energy"`
	Title  string  `json:"title,omitempty"`
	Artist string  `json:"artist,omitempty"`
}

// DefaultSessionParams returns the parameters used at mount time.
func DefaultSessionParams() SessionParams {
	return SessionParams{
		Mood:   DefaultMood,
		Tempo:  DefaultTempo,
		Energy: DefaultEnergy,
	}
}

// Classifier maps a valence score to a mood.
type Classifier func(valence float64) Mood

// Normalize converts raw attributes into SessionParams.
// Malformed values are replaced or clamped rather than rejected; every
// correction is reported as a *ValidationError so callers can log it.
// classify is consulted only when Mood is empty and Valence is set.
func (a SongAttributes) Normalize(classify Classifier) (SessionParams, []error) {
	var issues []error

	params := SessionParams{
		Title:  a.Title,
		Artist: a.Artist,
	}

	switch {
	case a.Mood == "" && a.Valence != nil && classify != nil:
		params.Mood = classify(clamp01(*a.Valence))
	default:
		m, ok := ParseMood(a.Mood)
		if !ok {
			issues = append(issues, NewValidationError("mood", a.Mood,
				fmt.Sprintf("unknown mood, using %q", FallbackMood)))
		}
		params.Mood = m
	}

	switch {
	case a.Tempo == 0:
		params.Tempo = DefaultTempo
	case math.IsNaN(a.Tempo) || math.IsInf(a.Tempo, 0) || a.Tempo < 0:
		issues = append(issues, NewValidationError("tempo", a.Tempo, "must be a positive number"))
		params.Tempo = DefaultTempo
	default:
		params.Tempo = a.Tempo
	}

	switch {
	case a.Energy == nil:
		params.Energy = DefaultEnergy
	case math.IsNaN(*a.Energy):
		issues = append(issues, NewValidationError("energy", *a.Energy, "must be a number"))
		params.Energy = DefaultEnergy
	case *a.Energy < 0 || *a.Energy > 1:
		issues = append(issues, NewValidationError("energy", *a.Energy, "clamped to [0,1]"))
		params.Energy = clamp01(*a.Energy)
	default:
		params.Energy = *a.Energy
	}

	return params, issues
}

// PulseFrequency is the focal pulse rate in radians per clock unit.
func (p SessionParams) PulseFrequency() float64 {
	return p.Tempo / 60
}

// Attributes converts p back into song attributes that normalize to p.
func (p SessionParams) Attributes() SongAttributes {
	energy := p.Energy
	return SongAttributes{
		Mood:   string(p.Mood),
		Tempo:  p.Tempo,
		Energy: &energy,
		Title:  p.Title,
		Artist: p.Artist,
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
