// Package fyne is the desktop host: a window with the mood canvas and a
// small control strip for picking the mood by hand or from a song file.
package fyne

import (
	"fmt"
	"log/slog"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/moodviz/moodviz/internal/adapter/metadata"
	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/mood"
	"github.com/moodviz/moodviz/internal/ports"
)

const (
	minTempo = 40
	maxTempo = 220
)

// MoodSink receives the attributes picked in the window and holds the
// startup session the controls are seeded from.
type MoodSink interface {
	OnMoodResolved(attrs domain.SongAttributes) domain.SessionParams
	Defaults() domain.SessionParams
	SetDefaults(params domain.SessionParams)
}

// Window is the desktop window. It reacts to session events and forwards
// user choices to the sink; it never talks to the driver directly.
type Window struct {
	app    fyneapp.App
	window fyneapp.Window
	logger *slog.Logger
	bus    ports.EventBus
	sink   MoodSink
	canvas *MoodCanvas
	name   string

	// UI components
	moodSelect   *widget.Select
	tempoSlider  *widget.Slider
	energySlider *widget.Slider
	tempoLabel   *widget.Label
	energyLabel  *widget.Label
	songLabel    *widget.Label
	status       *widget.Label
	applyButton  *widget.Button

	mu            sync.Mutex
	song          metadata.Info
	subs          []domain.SubscriptionID
	onBeforeClose func()
	onPrevious    func() bool

	// Lifecycle management
	closeOnce sync.Once
}

// NewWindow creates the window. name is the application display name.
func NewWindow(app fyneapp.App, logger *slog.Logger, bus ports.EventBus, sink MoodSink, c *MoodCanvas, name string) *Window {
	w := &Window{
		app:    app,
		logger: logger.With(slog.String("component", "window")),
		bus:    bus,
		sink:   sink,
		canvas: c,
		name:   name,
	}

	w.window = app.NewWindow(name)
	w.buildUI()
	w.window.SetFixedSize(true)
	w.window.SetCloseIntercept(w.handleClose)

	w.subs = append(w.subs,
		bus.Subscribe(domain.EventSessionStarted, w.onSessionStarted),
		bus.Subscribe(domain.EventMoodResolved, w.onMoodResolved),
	)

	return w
}

// buildUI constructs the UI components.
func (w *Window) buildUI() {
	initial := w.sink.Defaults()
	if !initial.Mood.Valid() {
		initial = domain.DefaultSessionParams()
	}

	moods := mood.Moods()
	options := make([]string, len(moods))
	for i, m := range moods {
		options[i] = string(m)
	}
	w.moodSelect = widget.NewSelect(options, nil)
	w.moodSelect.SetSelected(string(initial.Mood))

	w.tempoLabel = widget.NewLabel("")
	w.tempoSlider = widget.NewSlider(minTempo, maxTempo)
	w.tempoSlider.Step = 1
	w.tempoSlider.OnChanged = func(v float64) {
		w.tempoLabel.SetText(fmt.Sprintf("%d BPM", int(v)))
	}
	w.tempoSlider.SetValue(clampTempo(initial.Tempo))

	w.energyLabel = widget.NewLabel("")
	w.energySlider = widget.NewSlider(0, 1)
	w.energySlider.Step = 0.05
	w.energySlider.OnChanged = func(v float64) {
		w.energyLabel.SetText(fmt.Sprintf("energy %.2f", v))
	}
	w.energySlider.SetValue(initial.Energy)

	w.songLabel = widget.NewLabel("")
	w.songLabel.Truncation = fyneapp.TextTruncateEllipsis
	w.status = widget.NewLabel("")
	w.status.TextStyle = fyneapp.TextStyle{Italic: true}

	w.applyButton = widget.NewButton("Apply", w.apply)

	sliders := container.NewGridWithColumns(2,
		container.NewBorder(nil, nil, nil, w.tempoLabel, w.tempoSlider),
		container.NewBorder(nil, nil, nil, w.energyLabel, w.energySlider),
	)
	controls := container.NewVBox(
		container.NewBorder(nil, nil, w.moodSelect, w.applyButton, w.songLabel),
		sliders,
		w.status,
	)
	w.window.SetContent(container.NewBorder(nil, controls, nil, nil, w.canvas))
	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

// createMenu creates the application menu.
func (w *Window) createMenu() []*fyneapp.Menu {
	openSong := fyneapp.NewMenuItem("Open Song...", w.handleOpenSong)
	clearSong := fyneapp.NewMenuItem("Clear Song", func() {
		w.setSong(metadata.Info{})
		w.apply()
	})
	exitMenu := fyneapp.NewMenuItem("Exit", w.handleClose)
	previous := fyneapp.NewMenuItem("Previous Mood", w.handlePrevious)
	setDefault := fyneapp.NewMenuItem("Set as Default", w.handleSetDefault)
	resetDefault := fyneapp.NewMenuItem("Reset to Default", w.handleResetDefault)

	file := fyneapp.NewMenu("File", openSong, clearSong, fyneapp.NewMenuItemSeparator(), exitMenu)
	view := fyneapp.NewMenu("View", previous, fyneapp.NewMenuItemSeparator(), setDefault, resetDefault)
	return []*fyneapp.Menu{file, view}
}

// handlePrevious handles the "Previous Mood" menu action.
func (w *Window) handlePrevious() {
	w.mu.Lock()
	fn := w.onPrevious
	w.mu.Unlock()

	if fn == nil || !fn() {
		w.status.SetText("no previous mood")
	}
}

// handleSetDefault makes the current controls the startup session for the
// rest of this run.
func (w *Window) handleSetDefault() {
	params, _ := w.controls().Normalize(nil)
	w.sink.SetDefaults(params)
	w.status.SetText(fmt.Sprintf("default: %s at %d BPM", params.Mood, int(params.Tempo)))
}

// handleResetDefault restarts the animation with the startup session.
func (w *Window) handleResetDefault() {
	w.setSong(metadata.Info{})
	w.sink.OnMoodResolved(w.sink.Defaults().Attributes())
}

// handleOpenSong handles the "Open Song" menu action.
func (w *Window) handleOpenSong() {
	NewSongDialog(w.window, func(path string) {
		if err := w.OpenSong(path); err != nil {
			dialog.ShowError(err, w.window)
		}
	}, w.logger).Show()
}

// OpenSong reads the title and artist of the file at path and restarts the
// animation with them and the current controls.
func (w *Window) OpenSong(path string) error {
	info, err := metadata.ReadFile(path)
	if err != nil {
		w.logger.Warn("failed to read song tags", slog.String("path", path), slog.Any("error", err))
		return fmt.Errorf("read %s: %w", path, err)
	}
	w.setSong(info)
	w.apply()
	return nil
}

func (w *Window) setSong(info metadata.Info) {
	w.mu.Lock()
	w.song = info
	w.mu.Unlock()

	text := info.Title
	if info.Artist != "" {
		text += " - " + info.Artist
	}
	w.songLabel.SetText(text)
}

// apply sends the current control values to the sink.
func (w *Window) apply() {
	w.mu.Lock()
	song := w.song
	w.mu.Unlock()

	w.sink.OnMoodResolved(song.Apply(w.controls()))
}

func (w *Window) controls() domain.SongAttributes {
	energy := w.energySlider.Value
	return domain.SongAttributes{
		Mood:   w.moodSelect.Selected,
		Tempo:  w.tempoSlider.Value,
		Energy: &energy,
	}
}

func (w *Window) onSessionStarted(event domain.Event) {
	e, ok := event.(domain.SessionStartedEvent)
	if !ok {
		return
	}

	title := fmt.Sprintf("%s - %s", w.name, e.Params.Mood)
	if e.Params.Title != "" {
		title = fmt.Sprintf("%s - %s (%s)", w.name, e.Params.Title, e.Params.Mood)
	}
	status := fmt.Sprintf("%s | %s | %d particles | pulse %.2f rad/t",
		e.Params.Mood, e.Style, e.ParticleCount, e.Params.PulseFrequency())

	fyneapp.Do(func() {
		w.window.SetTitle(title)
		w.status.SetText(status)
	})
}

// onMoodResolved keeps the controls in line with sessions started elsewhere,
// e.g. by the web preview.
func (w *Window) onMoodResolved(event domain.Event) {
	e, ok := event.(domain.MoodResolvedEvent)
	if !ok {
		return
	}

	fyneapp.Do(func() {
		if w.moodSelect.Selected != string(e.Params.Mood) {
			w.moodSelect.SetSelected(string(e.Params.Mood))
		}
		w.tempoSlider.SetValue(clampTempo(e.Params.Tempo))
		w.energySlider.SetValue(e.Params.Energy)
	})
}

func clampTempo(t float64) float64 {
	return min(max(t, minTempo), maxTempo)
}

// SetOnBeforeClose sets a callback run before the window closes.
func (w *Window) SetOnBeforeClose(fn func()) {
	w.mu.Lock()
	w.onBeforeClose = fn
	w.mu.Unlock()
}

// SetOnPrevious sets the action of the "Previous Mood" menu item. fn reports
// whether an earlier session existed.
func (w *Window) SetOnPrevious(fn func() bool) {
	w.mu.Lock()
	w.onPrevious = fn
	w.mu.Unlock()
}

func (w *Window) handleClose() {
	w.mu.Lock()
	fn := w.onBeforeClose
	w.mu.Unlock()

	if fn != nil {
		fn()
	}
	w.Close()
}

// Title returns the current window title.
func (w *Window) Title() string {
	return w.window.Title()
}

// Status returns the text of the status line.
func (w *Window) Status() string {
	return w.status.Text
}

// ShowAndRun shows the window and runs the application.
func (w *Window) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close unsubscribes from the bus and closes the window.
// It's safe to call multiple times (idempotent).
func (w *Window) Close() {
	w.closeOnce.Do(func() {
		for _, id := range w.subs {
			w.bus.Unsubscribe(id)
		}
		w.window.Close()
	})
}

// GetWindow returns the underlying Fyne window.
func (w *Window) GetWindow() fyneapp.Window {
	return w.window
}
