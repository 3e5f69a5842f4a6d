package fyne

import (
	"log/slog"
	"sync"
	"time"

	fyneapp "fyne.io/fyne/v2"

	"github.com/moodviz/moodviz/internal/adapter/scheduler"
	"github.com/moodviz/moodviz/internal/ports"
)

// AnimationScheduler delivers frame callbacks on fyne's animation tick, which
// runs once per display refresh on the UI thread.
type AnimationScheduler struct {
	*scheduler.Queue

	logger *slog.Logger

	mu   sync.Mutex
	anim *fyneapp.Animation
}

// NewAnimationScheduler creates a stopped scheduler.
func NewAnimationScheduler(logger *slog.Logger) *AnimationScheduler {
	return &AnimationScheduler{
		Queue:  scheduler.NewQueue(),
		logger: logger.With(slog.String("component", "fyne-scheduler")),
	}
}

// Start begins flushing the queue every refresh. Calling Start twice is a no-op.
func (s *AnimationScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.anim != nil {
		return
	}

	// The duration only matters for the tick's progress value, which is unused
	s.anim = fyneapp.NewAnimation(time.Second, func(float32) {
		s.Flush()
	})
	s.anim.Curve = fyneapp.AnimationLinear
	s.anim.RepeatCount = fyneapp.AnimationRepeatForever
	s.anim.Start()

	s.logger.Debug("animation scheduler started")
}

// Stop halts the refresh signal. Pending callbacks stay queued.
func (s *AnimationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.anim == nil {
		return
	}
	s.anim.Stop()
	s.anim = nil

	s.logger.Debug("animation scheduler stopped")
}

var _ ports.Scheduler = (*AnimationScheduler)(nil)
