// Package app provides application-level orchestration and dependency injection.
// This package wires the visualization core to one of its hosts: the desktop
// window, the browser preview or a headless render.
package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/moodviz/moodviz/internal/adapter/eventbus"
	"github.com/moodviz/moodviz/internal/adapter/repository/memory"
	"github.com/moodviz/moodviz/internal/config"
	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/logger"
	"github.com/moodviz/moodviz/internal/ports"
	"github.com/moodviz/moodviz/internal/service"
)

// Core is the host-independent part of the application: the event bus, the
// animation driver, the controller that feeds it and the session history.
type Core struct {
	Logger     *slog.Logger
	Bus        *eventbus.SyncEventBus
	Driver     *service.AnimationDriver
	Controller *service.VisualizationController
	History    *memory.SessionHistory

	subs      []domain.SubscriptionID
	closeOnce sync.Once
}

// NewLogger builds the application logger from settings.
func NewLogger(settings *config.Config) (*slog.Logger, error) {
	cfg := logger.DefaultConfig()
	if settings.Log.Level != "" {
		level, err := logger.ParseLevel(settings.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		cfg.Level = level
	}
	if settings.Log.Format != "" {
		cfg.Format = settings.Log.Format
	}
	return logger.NewLogger(cfg), nil
}

// NewCore wires the core against a host's surface and scheduler.
func NewCore(log *slog.Logger, settings *config.Config, surface ports.Surface, scheduler ports.Scheduler) *Core {
	c := &Core{Logger: log}

	// Step 1: Create an event bus
	c.Bus = eventbus.NewSyncEventBus(log.With(slog.String("component", "eventbus")))
	c.subs = append(c.subs,
		c.Bus.SubscribeAll(c.logEvent),
		c.Bus.SubscribeFiltered(domain.EventSessionStopped, isReplacement, c.logReplacement),
	)

	// Step 2: Create the driver
	opts := service.DriverOptions{
		TickQuantum: settings.Animation.TickQuantum,
		LifeMargin:  settings.Animation.LifeMargin,
		ShowOverlay: settings.Animation.ShowOverlay,
		Seed:        settings.Animation.Seed,
	}
	c.Driver = service.NewAnimationDriver(log, surface, scheduler, c.Bus, opts)

	// Step 3: Create the controller
	c.Controller = service.NewVisualizationController(log, c.Driver, c.Bus, settings.SessionParams())

	// Step 4: Record resolved sessions
	c.History = memory.NewSessionHistory(0)
	c.subs = append(c.subs, c.Bus.Subscribe(domain.EventMoodResolved, c.record))

	return c
}

func (c *Core) record(event domain.Event) {
	if e, ok := event.(domain.MoodResolvedEvent); ok {
		c.History.Record(e.Params)
	}
}

// Previous restarts the session resolved before the current one.
// It reports false when there is none.
func (c *Core) Previous() bool {
	params, ok := c.History.Previous()
	if !ok {
		return false
	}
	c.Controller.OnMoodResolved(params.Attributes())
	return true
}

// Close stops the animation and shuts the bus down. Safe to call twice.
func (c *Core) Close() {
	c.closeOnce.Do(func() {
		c.Controller.Unmount()
		for _, id := range c.subs {
			c.Bus.Unsubscribe(id)
		}
		if err := c.Bus.Close(); err != nil {
			c.Logger.Warn("failed to close event bus", slog.Any("error", err))
		}
	})
}

func (c *Core) logEvent(event domain.Event) {
	switch e := event.(type) {
	case domain.SessionStartedEvent:
		c.Logger.Debug("event", slog.String("type", string(e.Type())),
			slog.String("session_id", e.SessionID),
			slog.String("mood", string(e.Params.Mood)))
	case domain.SessionStoppedEvent:
		c.Logger.Debug("event", slog.String("type", string(e.Type())),
			slog.String("session_id", e.SessionID),
			slog.Uint64("frames", e.Frames))
	case domain.MoodResolvedEvent:
		c.Logger.Debug("event", slog.String("type", string(e.Type())),
			slog.String("mood", string(e.Params.Mood)),
			slog.Int("issues", e.Issues))
	}
}

func isReplacement(event domain.Event) bool {
	e, ok := event.(domain.SessionStoppedEvent)
	return ok && e.Replaced
}

func (c *Core) logReplacement(event domain.Event) {
	e := event.(domain.SessionStoppedEvent)
	c.Logger.Debug("session replaced", slog.String("session_id", e.SessionID), slog.Uint64("frames", e.Frames))
}
