package app

import (
	"fmt"
	"log/slog"

	"github.com/moodviz/moodviz/internal/adapter/scheduler"
	"github.com/moodviz/moodviz/internal/config"
	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/render"
	"github.com/moodviz/moodviz/internal/service"
)

// RenderOptions describe a headless render.
type RenderOptions struct {
	// Song is resolved after mount; nil renders the default session
	Song *domain.SongAttributes

	// Frames is the number of frames to advance before the snapshot
	Frames int

	// Out is the output file; its extension selects PNG or SVG
	Out string
}

// Render runs a session offscreen for opts.Frames frames and writes the last
// one to opts.Out.
func Render(log *slog.Logger, settings *config.Config, opts RenderOptions) (service.SessionSnapshot, error) {
	if err := settings.Validate(); err != nil {
		return service.SessionSnapshot{}, err
	}
	if opts.Frames < 1 {
		return service.SessionSnapshot{}, fmt.Errorf("%w: frames must be at least 1, got %d", domain.ErrInvalidConfig, opts.Frames)
	}
	if _, err := render.FormatFromPath(opts.Out); err != nil {
		return service.SessionSnapshot{}, err
	}

	surface := render.NewOffscreen(settings.Canvas.Width, settings.Canvas.Height)
	queue := scheduler.NewQueue()
	core := NewCore(log, settings, surface, queue)
	defer core.Close()

	core.Controller.Mount()
	if opts.Song != nil {
		core.Controller.OnMoodResolved(*opts.Song)
	}
	queue.Run(opts.Frames)

	frame := surface.Last()
	if frame == nil {
		return service.SessionSnapshot{}, domain.ErrNoFrame
	}
	if err := render.WriteFile(opts.Out, frame); err != nil {
		return service.SessionSnapshot{}, err
	}

	snap, _ := core.Driver.Snapshot()
	log.Info("frame written",
		slog.String("path", opts.Out),
		slog.String("mood", string(snap.Mood)),
		slog.Uint64("frames", snap.Frames))
	return snap, nil
}
