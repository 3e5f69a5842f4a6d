package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/logger"
)

func newTestController(t *testing.T) (*VisualizationController, driverFixture) {
	t.Helper()
	f := newDriverFixture(t, DefaultDriverOptions())
	c := NewVisualizationController(logger.NewTestLogger(), f.driver, f.bus, domain.SessionParams{})
	return c, f
}

func ptr(v float64) *float64 { return &v }

func TestVisualizationController_JoyScenario(t *testing.T) {
	c, f := newTestController(t)

	c.OnMoodResolved(domain.SongAttributes{Mood: "joy", Tempo: 140, Energy: ptr(0.9)})

	snap, ok := f.driver.Snapshot()
	require.True(t, ok)
	assert.Equal(t, domain.MoodJoy, snap.Mood)
	assert.Equal(t, 80, snap.ParticleCount)
	assert.InDelta(t, 140.0/60, snap.PulseFrequency, 1e-12)
	assert.InDelta(t, 2.33, snap.PulseFrequency, 0.01)
	assert.Equal(t, domain.StyleSunburst, snap.Style)
	assert.InDelta(t, 1.08, snap.Intensity, 1e-12)
}

func TestVisualizationController_UnknownMoodFallsBackToSad(t *testing.T) {
	c, f := newTestController(t)

	params := c.OnMoodResolved(domain.SongAttributes{Mood: "unknown", Tempo: 100, Energy: ptr(0.5)})
	assert.Equal(t, domain.MoodSad, params.Mood)

	snap, _ := f.driver.Snapshot()
	assert.Equal(t, domain.MoodSad, snap.Mood)
	assert.Equal(t, domain.StyleFog, snap.Style)
	assert.Equal(t, 30, snap.ParticleCount)
}

func TestVisualizationController_MountStartsCalmDefault(t *testing.T) {
	c, f := newTestController(t)

	c.Mount()

	snap, ok := f.driver.Snapshot()
	require.True(t, ok)
	assert.Equal(t, domain.MoodCalm, snap.Mood)
	assert.Equal(t, 100.0, snap.Tempo)
	assert.Equal(t, 0.5, snap.Energy)
	assert.NotEmpty(t, f.driver.Particles(), "particles exist before the first tick")
	assert.Equal(t, domain.StateRunning, f.driver.State())
}

func TestVisualizationController_MountUsesConfiguredDefaults(t *testing.T) {
	f := newDriverFixture(t, DefaultDriverOptions())
	defaults := domain.SessionParams{Mood: domain.MoodSad, Tempo: 70, Energy: 0.3}
	c := NewVisualizationController(logger.NewTestLogger(), f.driver, f.bus, defaults)

	c.Mount()

	snap, _ := f.driver.Snapshot()
	assert.Equal(t, domain.MoodSad, snap.Mood)
	assert.Equal(t, 70.0, snap.Tempo)
}

func TestVisualizationController_Unmount(t *testing.T) {
	c, f := newTestController(t)

	c.Mount()
	c.Unmount()
	c.Unmount()

	assert.Equal(t, domain.StateStopped, f.driver.State())
	assert.Equal(t, 0, f.queue.Pending())
}

func TestVisualizationController_MalformedAttributes(t *testing.T) {
	c, f := newTestController(t)

	var resolved domain.MoodResolvedEvent
	f.bus.Subscribe(domain.EventMoodResolved, func(e domain.Event) {
		resolved = e.(domain.MoodResolvedEvent)
	})

	params := c.OnMoodResolved(domain.SongAttributes{Mood: "energy", Tempo: -20, Energy: ptr(math.NaN())})

	assert.Equal(t, domain.DefaultTempo, params.Tempo)
	assert.Equal(t, domain.DefaultEnergy, params.Energy)
	assert.Equal(t, 2, resolved.Issues)
	assert.Equal(t, domain.MoodEnergy, resolved.Params.Mood)
	assert.Equal(t, domain.StateRunning, f.driver.State())
}

func TestVisualizationController_ValenceClassification(t *testing.T) {
	c, f := newTestController(t)

	params := c.OnMoodResolved(domain.SongAttributes{Valence: ptr(0.8), Tempo: 128})

	assert.Equal(t, domain.MoodJoy, params.Mood)
	snap, _ := f.driver.Snapshot()
	assert.Equal(t, domain.StyleSunburst, snap.Style)
}

func TestVisualizationController_ReplacesRunningSession(t *testing.T) {
	c, f := newTestController(t)

	c.Mount()
	f.queue.Run(5)
	c.OnMoodResolved(domain.SongAttributes{Mood: "energy", Tempo: 170, Energy: ptr(1)})

	assert.Equal(t, 1, f.queue.Pending())
	f.queue.Flush()
	snap, _ := f.driver.Snapshot()
	assert.Equal(t, domain.MoodEnergy, snap.Mood)
	assert.Equal(t, uint64(1), snap.Frames)
}

func TestVisualizationController_SetDefaults(t *testing.T) {
	c, f := newTestController(t)

	c.SetDefaults(domain.SessionParams{Mood: "bogus", Tempo: 50})
	c.SetDefaults(domain.SessionParams{Mood: domain.MoodEnergy, Tempo: 160, Energy: 0.9, Title: "Saved"})
	c.Mount()

	snap, _ := f.driver.Snapshot()
	assert.Equal(t, domain.MoodEnergy, snap.Mood)
	assert.Equal(t, 160.0, snap.Tempo)
	assert.Equal(t, "Saved", snap.Title)
	assert.Equal(t, domain.MoodEnergy, c.Defaults().Mood)
}

func TestVisualizationController_MountCorrectsNonFiniteDefaults(t *testing.T) {
	f := newDriverFixture(t, DefaultDriverOptions())
	defaults := domain.SessionParams{Mood: domain.MoodJoy, Tempo: math.NaN(), Energy: math.NaN()}
	c := NewVisualizationController(logger.NewTestLogger(), f.driver, f.bus, defaults)

	c.Mount()
	f.queue.Run(3)

	snap, ok := f.driver.Snapshot()
	require.True(t, ok)
	assert.Equal(t, domain.DefaultTempo, snap.Tempo)
	assert.Equal(t, domain.DefaultEnergy, snap.Energy)
	assert.False(t, math.IsNaN(snap.Intensity))
	for _, p := range f.driver.Particles() {
		require.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y), "particle position %v,%v", p.X, p.Y)
		require.False(t, math.IsNaN(p.VX) || math.IsNaN(p.VY), "particle velocity %v,%v", p.VX, p.VY)
	}
}

func TestVisualizationController_SetDefaultsCorrectsNumbers(t *testing.T) {
	c, _ := newTestController(t)

	c.SetDefaults(domain.SessionParams{Mood: domain.MoodCalm, Tempo: math.Inf(1), Energy: 7})

	got := c.Defaults()
	assert.Equal(t, domain.DefaultTempo, got.Tempo)
	assert.Equal(t, 1.0, got.Energy)
}
