package service

import (
	"log/slog"
	"sync"

	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/mood"
	"github.com/moodviz/moodviz/internal/ports"
)

// sessionRunner is the part of AnimationDriver the controller drives.
type sessionRunner interface {
	Start(params domain.SessionParams) bool
	Stop()
}

// VisualizationController is the integration point for the data-fetch layer.
// It turns raw song attributes into session parameters and restarts the
// animation with them.
type VisualizationController struct {
	logger *slog.Logger
	driver sessionRunner
	bus    ports.EventBus

	mu       sync.Mutex
	defaults domain.SessionParams
}

// NewVisualizationController creates a controller. defaults are used by Mount;
// a zero value selects domain.DefaultSessionParams.
func NewVisualizationController(
	logger *slog.Logger,
	driver sessionRunner,
	bus ports.EventBus,
	defaults domain.SessionParams,
) *VisualizationController {
	if defaults.Mood == "" {
		defaults = domain.DefaultSessionParams()
	}
	return &VisualizationController{
		logger:   logger.With(slog.String("component", "controller")),
		driver:   driver,
		bus:      bus,
		defaults: defaults,
	}
}

// SetDefaults replaces the parameters used by the next Mount.
// Invalid moods are ignored; out-of-range numbers are corrected.
func (c *VisualizationController) SetDefaults(params domain.SessionParams) {
	if !params.Mood.Valid() {
		return
	}
	params = c.normalize(params)

	c.mu.Lock()
	c.defaults = params
	c.mu.Unlock()
}

// Defaults returns the parameters the next Mount will use.
func (c *VisualizationController) Defaults() domain.SessionParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defaults
}

// Mount starts the default session so the surface is never blank.
func (c *VisualizationController) Mount() {
	params := c.normalize(c.Defaults())

	c.logger.Debug("mount", slog.String("mood", string(params.Mood)))
	c.driver.Start(params)
}

// Unmount stops the animation.
func (c *VisualizationController) Unmount() {
	c.logger.Debug("unmount")
	c.driver.Stop()
}

// normalize runs params through the same corrections as song attributes.
func (c *VisualizationController) normalize(params domain.SessionParams) domain.SessionParams {
	out, issues := params.Attributes().Normalize(nil)
	for _, issue := range issues {
		c.logger.Warn("default session corrected", slog.Any("error", issue))
	}
	return out
}

// OnMoodResolved normalizes attrs and starts a session for them.
// Malformed values never fail the call: they are corrected and logged.
func (c *VisualizationController) OnMoodResolved(attrs domain.SongAttributes) domain.SessionParams {
	params, issues := attrs.Normalize(mood.FromValence)
	for _, issue := range issues {
		c.logger.Warn("song attributes corrected", slog.Any("error", issue))
	}

	if c.bus != nil {
		c.bus.Publish(domain.NewMoodResolvedEvent(attrs, params, len(issues)))
	}

	c.driver.Start(params)
	return params
}
