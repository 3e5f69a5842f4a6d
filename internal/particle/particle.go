// Package particle implements the mood particle system.
//
// A System owns a fixed set of particles for the lifetime of one animation
// session. All randomness is confined to NewSystem; Advance is deterministic.
package particle

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/moodviz/moodviz/internal/mood"
)

const (
	minSize           = 3.0
	sizeRange         = 8.0 // sizes fall in [3, 11)
	maxRotationSpeed  = 0.05
	pulseIncrement    = 0.05
	DefaultLifeMargin = 40.0
	twoPi             = 2 * math.Pi
)

// Particle is the mutable state of a single particle.
type Particle struct {
	X, Y          float64
	VX, VY        float64
	Size          float64
	PulsePhase    float64
	Rotation      float64
	RotationSpeed float64
	Color         colorful.Color
	Life          float64 // 1 away from the edges, fading to 0 at the edge
}

// Options tune a System.
type Options struct {
	// LifeMargin is the distance from an edge where particles start fading.
	// Zero or negative disables the fade (Life stays 1).
	LifeMargin float64
}

// DefaultOptions returns the standard particle options.
func DefaultOptions() Options {
	return Options{LifeMargin: DefaultLifeMargin}
}

// System owns the particles of one session.
type System struct {
	particles []Particle
	opts      Options
}

// NewSystem allocates profile.ParticleCount particles spread uniformly over a
// width×height canvas. Colours are assigned round-robin from the palette so a
// profile always shows its whole palette.
func NewSystem(profile mood.Profile, width, height, intensity float64, rng *rand.Rand, opts Options) *System {
	if rng == nil {
		// nolint:gosec // G404 - weak random is fine for visual effects
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	count := max(profile.ParticleCount, 0)
	speed := profile.BaseSpeed * intensity

	s := &System{
		particles: make([]Particle, count),
		opts:      opts,
	}

	for i := range s.particles {
		p := &s.particles[i]
		p.X = rng.Float64() * width
		p.Y = rng.Float64() * height
		p.Size = minSize + rng.Float64()*sizeRange
		p.VX = (rng.Float64() - 0.5) * speed
		p.VY = (rng.Float64() - 0.5) * speed
		p.Rotation = rng.Float64() * twoPi
		p.RotationSpeed = (rng.Float64()*2 - 1) * maxRotationSpeed
		p.PulsePhase = rng.Float64() * twoPi
		if len(profile.Palette) > 0 {
			p.Color = profile.Palette[i%len(profile.Palette)]
		}
		p.Life = s.life(p.X, p.Y, width, height)
	}

	return s
}

// Len returns the number of particles.
func (s *System) Len() int {
	return len(s.particles)
}

// Particles returns a copy of the current particle states.
func (s *System) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Advance moves every particle by step frames. A particle that crosses an
// edge has the matching velocity component inverted; it is not clamped, so it
// may sit outside the canvas for one frame before heading back.
func (s *System) Advance(width, height, step float64) {
	for i := range s.particles {
		p := &s.particles[i]

		p.X += p.VX * step
		p.Y += p.VY * step

		if (p.X < 0 && p.VX < 0) || (p.X > width && p.VX > 0) {
			p.VX = -p.VX
		}
		if (p.Y < 0 && p.VY < 0) || (p.Y > height && p.VY > 0) {
			p.VY = -p.VY
		}

		p.Rotation = math.Mod(p.Rotation+p.RotationSpeed*step, twoPi)
		p.PulsePhase = math.Mod(p.PulsePhase+pulseIncrement*step, twoPi)
		p.Life = s.life(p.X, p.Y, width, height)
	}
}

// life is the edge-proximity fade factor.
func (s *System) life(x, y, width, height float64) float64 {
	if s.opts.LifeMargin <= 0 {
		return 1
	}
	d := math.Min(math.Min(x, width-x), math.Min(y, height-y))
	return math.Max(0, math.Min(1, d/s.opts.LifeMargin))
}
