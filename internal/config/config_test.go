package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodviz/moodviz/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 600, cfg.Canvas.Width)
	assert.Equal(t, 0.016, cfg.Animation.TickQuantum)
	assert.True(t, cfg.Animation.ShowOverlay)
	assert.Equal(t, domain.DefaultSessionParams(), cfg.SessionParams())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moodviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
canvas:
  width: 800
animation:
  seed: 42
  show_overlay: false
session:
  mood: sad
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Canvas.Width)
	assert.Equal(t, DefaultHeight, cfg.Canvas.Height, "unset keys keep defaults")
	assert.Equal(t, uint64(42), cfg.Animation.Seed)
	assert.False(t, cfg.Animation.ShowOverlay)
	assert.Equal(t, domain.MoodSad, cfg.SessionParams().Mood)
	assert.Equal(t, domain.DefaultTempo, cfg.SessionParams().Tempo)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load("")
	assert.ErrorIs(t, err, domain.ErrInvalidFilePath)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("canvas: [oops"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("session:\n  energy: 4\n"), 0644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	for name, body := range map[string]string{
		"nan-tempo.yaml":  "session:\n  tempo: .nan\n",
		"inf-tempo.yaml":  "session:\n  tempo: .inf\n",
		"nan-energy.yaml": "session:\n  energy: .nan\n",
		"nan-tick.yaml":   "animation:\n  tick_quantum: .nan\n",
		"inf-tick.yaml":   "animation:\n  tick_quantum: .inf\n",
		"nan-margin.yaml": "animation:\n  life_margin: .nan\n",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		_, err = Load(path)
		assert.ErrorIs(t, err, domain.ErrInvalidConfig, name)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"canvas", func(c *Config) { c.Canvas.Width = 0 }, "canvas"},
		{"frame rate", func(c *Config) { c.Animation.FrameRate = 1000 }, "animation.frame_rate"},
		{"tick", func(c *Config) { c.Animation.TickQuantum = 0 }, "animation.tick_quantum"},
		{"life margin", func(c *Config) { c.Animation.LifeMargin = -1 }, "animation.life_margin"},
		{"mood", func(c *Config) { c.Session.Mood = "angry" }, "session.mood"},
		{"tempo", func(c *Config) { c.Session.Tempo = -3 }, "session.tempo"},
		{"energy", func(c *Config) { c.Session.Energy = 1.5 }, "session.energy"},
		{"nan tempo", func(c *Config) { c.Session.Tempo = math.NaN() }, "session.tempo"},
		{"inf tempo", func(c *Config) { c.Session.Tempo = math.Inf(1) }, "session.tempo"},
		{"nan energy", func(c *Config) { c.Session.Energy = math.NaN() }, "session.energy"},
		{"nan tick", func(c *Config) { c.Animation.TickQuantum = math.NaN() }, "animation.tick_quantum"},
		{"nan life margin", func(c *Config) { c.Animation.LifeMargin = math.NaN() }, "animation.life_margin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, domain.ErrInvalidConfig)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Web.Addr = ":9000"
	cfg.Session.Mood = "energy"

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
