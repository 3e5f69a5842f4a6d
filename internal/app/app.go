package app

import (
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	fyneui "github.com/moodviz/moodviz/internal/adapter/ui/fyne"
	"github.com/moodviz/moodviz/internal/config"
	"github.com/moodviz/moodviz/internal/domain"
)

// Application is the desktop application: the core hosted in a fyne window.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for the CLI
type Application struct {
	*Core

	settings *config.Config
	fyneApp  fyne.App

	canvas    *fyneui.MoodCanvas
	scheduler *fyneui.AnimationScheduler
	window    *fyneui.Window

	song         *domain.SongAttributes
	shutdownOnce sync.Once
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// AppName is the display name
	AppName string

	// Settings are the loaded settings file; nil selects the defaults
	Settings *config.Config

	// Song, when set, is resolved right after mount
	Song *domain.SongAttributes

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	return Config{
		AppID:    "io.github.moodviz",
		AppName:  "MoodViz",
		Settings: config.DefaultConfig(),
	}
}

// NewApplication creates the desktop application with all dependencies wired.
func NewApplication(cfg Config) (*Application, error) {
	settings := cfg.Settings
	if settings == nil {
		settings = config.DefaultConfig()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	app := &Application{settings: settings, song: cfg.Song}

	// Step 1: Create Fyne application
	if cfg.TestFyneApp != nil {
		app.fyneApp = cfg.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(cfg.AppID)
	}

	// Step 2: Create logger
	log, err := NewLogger(settings)
	if err != nil {
		return nil, err
	}
	log.Info("initializing application",
		slog.String("app_id", cfg.AppID),
		slog.String("app_name", cfg.AppName))

	// Step 3: Create the host surface and scheduler
	app.canvas = fyneui.NewMoodCanvas(settings.Canvas.Width, settings.Canvas.Height)
	app.scheduler = fyneui.NewAnimationScheduler(log)

	// Step 4: Wire the core
	app.Core = NewCore(log, settings, app.canvas.Surface(), app.scheduler)

	// Step 5: Create UI
	app.window = fyneui.NewWindow(app.fyneApp, log, app.Bus, app.Controller, app.canvas, cfg.AppName)
	app.window.SetOnBeforeClose(app.Shutdown)
	app.window.SetOnPrevious(app.Previous)

	return app, nil
}

// Mount starts the default session, or the configured song, and the
// refresh signal.
func (a *Application) Mount() {
	a.Controller.Mount()
	if a.song != nil {
		a.Controller.OnMoodResolved(*a.song)
	}
	a.scheduler.Start()
}

// Run shows the window and blocks until it is closed.
func (a *Application) Run() {
	a.Logger.Info("MoodViz started")
	a.Mount()
	a.window.ShowAndRun()
}

// Play resolves attrs as if a song had just been picked.
func (a *Application) Play(attrs domain.SongAttributes) domain.SessionParams {
	return a.Controller.OnMoodResolved(attrs)
}

// OpenSong loads the title and artist of a song file into the window.
func (a *Application) OpenSong(path string) error {
	return a.window.OpenSong(path)
}

// Shutdown gracefully shuts down the application.
// It's safe to call multiple times.
func (a *Application) Shutdown() {
	a.shutdownOnce.Do(func() {
		a.Logger.Info("shutting down application")

		a.scheduler.Stop()
		a.Core.Close()

		a.Logger.Info("application shutdown complete")
	})
}

// Window returns the desktop window.
func (a *Application) Window() *fyneui.Window {
	return a.window
}
