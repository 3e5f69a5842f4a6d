// Package web serves a browser preview of the visualization: a small JSON
// API to push song attributes and a websocket stream of rendered frames.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/mood"
	"github.com/moodviz/moodviz/internal/render"
	"github.com/moodviz/moodviz/internal/service"
)

//go:embed static/index.html
var staticFS embed.FS

const maxBodyBytes = 64 << 10

// MoodSink receives resolved song attributes.
type MoodSink interface {
	OnMoodResolved(attrs domain.SongAttributes) domain.SessionParams
}

// SessionSource reports the active session.
type SessionSource interface {
	Snapshot() (service.SessionSnapshot, bool)
}

// HistorySource lists the sessions resolved during this run.
type HistorySource interface {
	History() []domain.SessionParams
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr string
}

// Server is the preview HTTP server.
type Server struct {
	logger   *slog.Logger
	router   chi.Router
	server   *http.Server
	hub      *Hub
	sink     MoodSink
	sessions SessionSource

	mu      sync.RWMutex
	history HistorySource
}

// NewServer creates a server; call Run to start it.
func NewServer(logger *slog.Logger, cfg ServerConfig, hub *Hub, sink MoodSink, sessions SessionSource) *Server {
	s := &Server{
		logger:   logger.With(slog.String("component", "web")),
		router:   chi.NewRouter(),
		hub:      hub,
		sink:     sink,
		sessions: sessions,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:        cfg.Addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	return s
}

// SetHistory enables GET /api/history.
func (s *Server) SetHistory(h HistorySource) {
	s.mu.Lock()
	s.history = h
	s.mu.Unlock()
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/ws", s.hub.ServeHTTP)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/mood", s.handleMood)
		r.Get("/session", s.handleSession)
		r.Get("/moods", s.handleMoods)
		r.Get("/history", s.handleHistory)
		r.Get("/frame.png", s.handleFrame)
	})
}

// requestLogger logs each request through slog once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", slog.String("addr", "http://"+s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen %s: %w", s.server.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("preview server stopped")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

type moodResponse struct {
	Params  domain.SessionParams    `json:"params"`
	Session service.SessionSnapshot `json:"session"`
}

func (s *Server) handleMood(w http.ResponseWriter, r *http.Request) {
	var attrs domain.SongAttributes
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&attrs); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode song attributes: %w", err))
		return
	}

	params := s.sink.OnMoodResolved(attrs)
	snap, _ := s.sessions.Snapshot()
	writeJSON(w, http.StatusOK, moodResponse{Params: params, Session: snap})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.sessions.Snapshot()
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("no session started"))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type profileResponse struct {
	Mood                domain.Mood           `json:"mood"`
	ParticleCount       int                   `json:"particle_count"`
	Palette             []string              `json:"palette"`
	BaseSpeed           float64               `json:"base_speed"`
	ParticleShape       domain.ParticleShape  `json:"particle_shape"`
	BackgroundPalette   []string              `json:"background_palette"`
	AnimationStyle      domain.AnimationStyle `json:"animation_style"`
	IntensityMultiplier float64               `json:"intensity_multiplier"`
}

func (s *Server) handleMoods(w http.ResponseWriter, r *http.Request) {
	moods := mood.Moods()
	out := make([]profileResponse, 0, len(moods))
	for _, m := range moods {
		p := mood.Lookup(m)
		resp := profileResponse{
			Mood:                p.Mood,
			ParticleCount:       p.ParticleCount,
			BaseSpeed:           p.BaseSpeed,
			ParticleShape:       p.ParticleShape,
			AnimationStyle:      p.AnimationStyle,
			IntensityMultiplier: p.IntensityMultiplier,
		}
		for _, c := range p.Palette {
			resp.Palette = append(resp.Palette, c.Hex())
		}
		for _, c := range p.BackgroundPalette {
			resp.BackgroundPalette = append(resp.BackgroundPalette, c.Hex())
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	h := s.history
	s.mu.RUnlock()

	out := []domain.SessionParams{}
	if h != nil {
		out = h.History()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	frame, err := s.hub.Latest()
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	data, err := render.PNG(frame)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
