package particle

import (
	"math"

	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/scene"
)

const (
	particleAlpha = 0.8
	breathDepth   = 0.2
	waveSegments  = 8
)

// Commands returns the draw primitives for every particle in shape.
// Unknown shapes draw as circles.
func (s *System) Commands(shape domain.ParticleShape) []scene.Command {
	out := make([]scene.Command, 0, len(s.particles))
	for i := range s.particles {
		out = append(out, s.particles[i].command(shape))
	}
	return out
}

// command builds the primitive for a single particle.
func (p *Particle) command(shape domain.ParticleShape) scene.Command {
	size := p.Size * (1 + breathDepth*math.Sin(p.PulsePhase))
	alpha := particleAlpha * p.Life

	switch shape {
	case domain.ShapeTriangle:
		pts := make([]scene.Point, 3)
		for k := range pts {
			a := p.Rotation + float64(k)*twoPi/3
			pts[k] = scene.Point{X: p.X + math.Cos(a)*size, Y: p.Y + math.Sin(a)*size}
		}
		return scene.Polygon(pts, true, 0, p.Color, alpha)

	case domain.ShapeWave:
		// Half-circle arc, rotated with the particle
		pts := make([]scene.Point, waveSegments+1)
		r := size * 1.5
		for k := range pts {
			a := p.Rotation + math.Pi*float64(k)/waveSegments
			pts[k] = scene.Point{X: p.X + math.Cos(a)*r, Y: p.Y + math.Sin(a)*r}
		}
		return scene.Polyline(pts, 2, p.Color, alpha)

	case domain.ShapeRain:
		// Streak trailing behind the horizontal drift
		return scene.Line(p.X, p.Y, p.X-p.VX*2, p.Y+size*2, 1.5, p.Color, alpha, alpha*0.2)

	default:
		return scene.FilledCircle(p.X, p.Y, size, p.Color, alpha)
	}
}
