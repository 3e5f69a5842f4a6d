// Package config loads the YAML settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/moodviz/moodviz/internal/domain"
)

const (
	DefaultWidth       = 600
	DefaultHeight      = 600
	DefaultFrameRate   = 60
	DefaultTickQuantum = 0.016
	DefaultLifeMargin  = 40.0
	DefaultAddr        = "127.0.0.1:8080"
)

type Config struct {
	Canvas    CanvasConfig    `yaml:"canvas"`
	Animation AnimationConfig `yaml:"animation"`
	Session   SessionConfig   `yaml:"session"`
	Web       WebConfig       `yaml:"web"`
	Log       LogConfig       `yaml:"log"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type AnimationConfig struct {
	FrameRate   int     `yaml:"frame_rate"`
	TickQuantum float64 `yaml:"tick_quantum"`
	LifeMargin  float64 `yaml:"life_margin"`
	Seed        uint64  `yaml:"seed"`
	ShowOverlay bool    `yaml:"show_overlay"`
}

// SessionConfig is the session started at mount, before any song is known.
type SessionConfig struct {
	Mood   string  `yaml:"mood"`
	Tempo  float64 `yaml:"tempo"`
	Energy float64 `yaml:"energy"`
}

type WebConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Animation: AnimationConfig{
			FrameRate:   DefaultFrameRate,
			TickQuantum: DefaultTickQuantum,
			LifeMargin:  DefaultLifeMargin,
			ShowOverlay: true,
		},
		Session: SessionConfig{
			Mood:   string(domain.DefaultMood),
			Tempo:  domain.DefaultTempo,
			Energy: domain.DefaultEnergy,
		},
		Web: WebConfig{Addr: DefaultAddr},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, domain.ErrInvalidFilePath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first out-of-range setting, wrapping domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return invalid("canvas", fmt.Sprintf("%dx%d", c.Canvas.Width, c.Canvas.Height), "must be positive")
	case c.Animation.FrameRate <= 0 || c.Animation.FrameRate > 240:
		return invalid("animation.frame_rate", c.Animation.FrameRate, "must be in 1..240")
	case !positive(c.Animation.TickQuantum):
		return invalid("animation.tick_quantum", c.Animation.TickQuantum, "must be a positive number")
	case math.IsNaN(c.Animation.LifeMargin) || c.Animation.LifeMargin < 0 || math.IsInf(c.Animation.LifeMargin, 0):
		return invalid("animation.life_margin", c.Animation.LifeMargin, "must be a non-negative number")
	case !domain.Mood(c.Session.Mood).Valid():
		return invalid("session.mood", c.Session.Mood, "unknown mood")
	case !positive(c.Session.Tempo):
		return invalid("session.tempo", c.Session.Tempo, "must be a positive number")
	case math.IsNaN(c.Session.Energy) || c.Session.Energy < 0 || c.Session.Energy > 1:
		return invalid("session.energy", c.Session.Energy, "must be in [0,1]")
	}
	return nil
}

// SessionParams returns the mount-time session parameters.
func (c *Config) SessionParams() domain.SessionParams {
	return domain.SessionParams{
		Mood:   domain.Mood(c.Session.Mood),
		Tempo:  c.Session.Tempo,
		Energy: c.Session.Energy,
	}
}

// positive rejects NaN and infinities as well as values <= 0.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func invalid(field string, value any, msg string) error {
	return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, domain.NewValidationError(field, value, msg))
}
