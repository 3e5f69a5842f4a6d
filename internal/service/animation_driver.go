// Package service provides the visualization services: the animation driver
// that owns the frame loop and the controller that feeds it song attributes.
package service

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/mood"
	"github.com/moodviz/moodviz/internal/particle"
	"github.com/moodviz/moodviz/internal/pattern"
	"github.com/moodviz/moodviz/internal/ports"
	"github.com/moodviz/moodviz/internal/scene"
)

const (
	motifBaseSize  = 100.0
	motifAmplitude = 50.0

	titleOverlayY = 30.0
	infoOverlayY  = 50.0

	// DefaultTickQuantum advances the clock by roughly one 60 fps frame.
	DefaultTickQuantum = 0.016
)

// DriverOptions tune the animation driver.
type DriverOptions struct {
	TickQuantum float64 // Clock increment per frame
	LifeMargin  float64 // Particle edge fade distance, 0 disables
	ShowOverlay bool    // Draw title/tempo/mood text when a title is known
	Seed        uint64  // Non-zero makes particle layouts reproducible
}

// DefaultDriverOptions returns the standard driver options.
func DefaultDriverOptions() DriverOptions {
	return DriverOptions{
		TickQuantum: DefaultTickQuantum,
		LifeMargin:  particle.DefaultLifeMargin,
		ShowOverlay: true,
	}
}

// SessionSnapshot is a read-only view of the active session.
type SessionSnapshot struct {
	ID             string                `json:"id"`
	State          string                `json:"state"`
	Mood           domain.Mood           `json:"mood"`
	Style          domain.AnimationStyle `json:"style"`
	Shape          domain.ParticleShape  `json:"shape"`
	Tempo          float64               `json:"tempo"`
	Energy         float64               `json:"energy"`
	Intensity      float64               `json:"intensity"`
	PulseFrequency float64               `json:"pulse_frequency"`
	Clock          float64               `json:"clock"`
	Frames         uint64                `json:"frames"`
	ParticleCount  int                   `json:"particle_count"`
	Title          string                `json:"title,omitempty"`
	Artist         string                `json:"artist,omitempty"`
}

// session is one running instance of the loop. Only the driver mutates it,
// and only while holding the driver lock.
type session struct {
	id        string
	params    domain.SessionParams
	profile   mood.Profile
	intensity float64
	particles *particle.System
	clock     float64
	frames    uint64
	handle    ports.FrameHandle
	tick      ports.FrameCallback
}

// AnimationDriver runs at most one animation session against a surface.
//
// Start and Stop are the only mutators. Both cancel the pending frame of the
// current session before anything else, so two loops never draw to the
// surface at once.
//
// Thread-safety: all methods are safe for concurrent use. Frame callbacks
// take the same lock, and Present is called while it is held.
type AnimationDriver struct {
	logger    *slog.Logger
	surface   ports.Surface
	scheduler ports.Scheduler
	bus       ports.EventBus
	opts      DriverOptions

	mu       sync.Mutex
	state    domain.RunState
	current  *session
	sessions uint64
}

// NewAnimationDriver creates an idle driver.
func NewAnimationDriver(
	logger *slog.Logger,
	surface ports.Surface,
	scheduler ports.Scheduler,
	bus ports.EventBus,
	opts DriverOptions,
) *AnimationDriver {
	if !(opts.TickQuantum > 0) || math.IsInf(opts.TickQuantum, 0) {
		opts.TickQuantum = DefaultTickQuantum
	}
	if math.IsNaN(opts.LifeMargin) || math.IsInf(opts.LifeMargin, 0) {
		opts.LifeMargin = 0
	}

	d := &AnimationDriver{
		logger:    logger.With(slog.String("component", "driver")),
		surface:   surface,
		scheduler: scheduler,
		bus:       bus,
		opts:      opts,
		state:     domain.StateIdle,
	}

	d.logger.Debug("animation driver initialized",
		slog.Float64("tick_quantum", opts.TickQuantum),
		slog.Bool("overlay", opts.ShowOverlay))

	return d
}

// Start replaces the running session with a new one for params.
// It reports whether a session was started; an unavailable surface makes it
// a no-op that leaves any prior session untouched.
func (d *AnimationDriver) Start(params domain.SessionParams) bool {
	var events []domain.Event
	defer func() { d.publish(events) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	w, h := d.surfaceSize()
	if w <= 0 || h <= 0 {
		d.logger.Debug("start skipped", slog.Any("error", domain.ErrSurfaceUnavailable))
		return false
	}

	if prev := d.current; prev != nil && d.state == domain.StateRunning {
		d.cancelLocked(prev)
		events = append(events, domain.NewSessionStoppedEvent(prev.id, prev.frames, true))
	}

	profile := mood.Lookup(params.Mood)
	intensity := profile.Intensity(params.Energy)

	s := &session{
		id:        uuid.NewString(),
		params:    params,
		profile:   profile,
		intensity: intensity,
	}
	s.particles = particle.NewSystem(profile, float64(w), float64(h), intensity,
		d.nextRand(), particle.Options{LifeMargin: d.opts.LifeMargin})
	s.tick = func() { d.frame(s) }

	d.current = s
	d.state = domain.StateRunning
	s.handle = d.scheduler.RequestFrame(s.tick)

	d.logger.Info("session started",
		slog.String("session_id", s.id),
		slog.String("mood", string(profile.Mood)),
		slog.String("style", string(profile.AnimationStyle)),
		slog.Float64("tempo", params.Tempo),
		slog.Float64("intensity", intensity),
		slog.Int("particles", s.particles.Len()))

	events = append(events, domain.NewSessionStartedEvent(s.id, params, profile.AnimationStyle, s.particles.Len()))
	return true
}

// Stop cancels the pending frame and marks the session Stopped.
// Stopping an idle or stopped driver does nothing.
func (d *AnimationDriver) Stop() {
	var events []domain.Event
	defer func() { d.publish(events) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != domain.StateRunning || d.current == nil {
		return
	}

	s := d.current
	d.cancelLocked(s)
	d.state = domain.StateStopped

	d.logger.Info("session stopped",
		slog.String("session_id", s.id),
		slog.Uint64("frames", s.frames))

	events = append(events, domain.NewSessionStoppedEvent(s.id, s.frames, false))
}

// State returns the lifecycle state of the current session.
func (d *AnimationDriver) State() domain.RunState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Snapshot describes the current session. ok is false before the first Start.
func (d *AnimationDriver) Snapshot() (snap SessionSnapshot, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.current
	if s == nil {
		return SessionSnapshot{State: d.state.String()}, false
	}
	return SessionSnapshot{
		ID:             s.id,
		State:          d.state.String(),
		Mood:           s.profile.Mood,
		Style:          s.profile.AnimationStyle,
		Shape:          s.profile.ParticleShape,
		Tempo:          s.params.Tempo,
		Energy:         s.params.Energy,
		Intensity:      s.intensity,
		PulseFrequency: s.params.PulseFrequency(),
		Clock:          s.clock,
		Frames:         s.frames,
		ParticleCount:  s.particles.Len(),
		Title:          s.params.Title,
		Artist:         s.params.Artist,
	}, true
}

// Particles returns a copy of the current session's particles.
func (d *AnimationDriver) Particles() []particle.Particle {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == nil {
		return nil
	}
	return d.current.particles.Particles()
}

// frame is the per-refresh callback of session s.
func (d *AnimationDriver) frame(s *session) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// A callback that was already dequeued when its session was replaced
	// must not draw.
	if d.current != s || d.state != domain.StateRunning {
		return
	}
	s.handle = 0

	w, h := d.surfaceSize()
	if w > 0 && h > 0 {
		d.surface.Present(d.compose(s, w, h))
	}

	s.clock += d.opts.TickQuantum
	s.frames++
	s.handle = d.scheduler.RequestFrame(s.tick)
}

// compose builds one frame and advances the particles by one step.
func (d *AnimationDriver) compose(s *session, w, h int) *scene.Frame {
	fw, fh := float64(w), float64(h)
	frame := &scene.Frame{Width: w, Height: h}

	frame.Add(scene.Gradient(s.profile.BackgroundPalette))

	size := motifBaseSize + motifAmplitude*s.intensity*math.Sin(s.clock*s.params.PulseFrequency())
	motif := pattern.For(s.profile.AnimationStyle)
	frame.Add(motif(fw/2, fh/2, size, s.clock, s.profile.Palette)...)

	s.particles.Advance(fw, fh, 1)
	frame.Add(s.particles.Commands(s.profile.ParticleShape)...)

	if d.opts.ShowOverlay && s.params.Title != "" {
		frame.Add(overlay(s, fw)...)
	}
	return frame
}

func overlay(s *session, width float64) []scene.Command {
	heading := s.params.Title
	if s.params.Artist != "" {
		heading += " - " + s.params.Artist
	}
	info := fmt.Sprintf("Tempo: %d BPM | Mood: %s", int(math.Round(s.params.Tempo)), s.profile.Mood)

	return []scene.Command{
		scene.Text(width/2, titleOverlayY, heading, scene.White),
		scene.Text(width/2, infoOverlayY, info, scene.White),
	}
}

func (d *AnimationDriver) cancelLocked(s *session) {
	if s.handle != 0 {
		d.scheduler.CancelFrame(s.handle)
		s.handle = 0
	}
}

func (d *AnimationDriver) surfaceSize() (int, int) {
	if d.surface == nil {
		return 0, 0
	}
	return d.surface.Size()
}

// nextRand returns a per-session source. With a seed configured, the n-th
// session always gets the same layout.
func (d *AnimationDriver) nextRand() *rand.Rand {
	d.sessions++
	if d.opts.Seed == 0 {
		return nil
	}
	// nolint:gosec // G404 - weak random is fine for visual effects
	return rand.New(rand.NewPCG(d.opts.Seed, d.sessions))
}

func (d *AnimationDriver) publish(events []domain.Event) {
	if d.bus == nil {
		return
	}
	for _, e := range events {
		d.bus.Publish(e)
	}
}
