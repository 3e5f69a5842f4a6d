package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/moodviz/moodviz/internal/adapter/scheduler"
	"github.com/moodviz/moodviz/internal/adapter/web"
	"github.com/moodviz/moodviz/internal/config"
)

// Preview hosts the core behind the browser preview server. Frames are
// driven by a fixed-rate ticker and streamed over websockets.
type Preview struct {
	*Core

	hub    *web.Hub
	ticker *scheduler.Ticker
	server *web.Server
}

// NewPreview wires the core to a websocket hub and an HTTP server.
func NewPreview(log *slog.Logger, settings *config.Config) (*Preview, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	p := &Preview{}
	p.hub = web.NewHub(log, settings.Canvas.Width, settings.Canvas.Height, 0)
	p.ticker = scheduler.NewTicker(log.With(slog.String("component", "ticker")), settings.Animation.FrameRate)
	p.Core = NewCore(log, settings, p.hub, p.ticker)
	p.server = web.NewServer(log, web.ServerConfig{Addr: settings.Web.Addr}, p.hub, p.Controller, p.Driver)
	p.server.SetHistory(p.History)

	return p, nil
}

// Handler exposes the HTTP routes, mainly for tests.
func (p *Preview) Handler() http.Handler {
	return p.server.Handler()
}

// Mount starts the default session and the ticker.
func (p *Preview) Mount() {
	p.Controller.Mount()
	p.ticker.Start()
}

// Run serves until ctx is cancelled, then stops the animation.
func (p *Preview) Run(ctx context.Context) error {
	p.Mount()
	defer p.Close()
	return p.server.Run(ctx)
}

// Close stops the ticker and the core.
func (p *Preview) Close() {
	p.ticker.Stop()
	p.Core.Close()
}
