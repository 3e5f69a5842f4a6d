package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/moodviz/moodviz/internal/ports"
)

// Ticker flushes a Queue at a fixed frame rate on its own goroutine.
type Ticker struct {
	*Queue

	logger   *slog.Logger
	interval time.Duration

	mu       sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewTicker creates a stopped ticker running at fps frames per second.
// Non-positive rates fall back to 60.
func NewTicker(logger *slog.Logger, fps int) *Ticker {
	if fps <= 0 {
		fps = 60
	}
	return &Ticker{
		Queue:    NewQueue(),
		logger:   logger,
		interval: time.Second / time.Duration(fps),
	}
}

// Interval returns the time between flushes.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Start launches the flush loop. Calling Start on a running ticker does nothing.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopChan != nil {
		return
	}
	t.stopChan = make(chan struct{})
	t.wg.Add(1)
	go t.loop(t.stopChan)

	t.logger.Debug("frame ticker started", slog.Duration("interval", t.interval))
}

// Stop halts the loop and waits for an in-flight flush to finish.
// Pending callbacks stay queued.
func (t *Ticker) Stop() {
	t.mu.Lock()
	stop := t.stopChan
	t.stopChan = nil
	t.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	t.wg.Wait()

	t.logger.Debug("frame ticker stopped")
}

func (t *Ticker) loop(stop <-chan struct{}) {
	defer t.wg.Done()

	tick := time.NewTicker(t.interval)
	defer tick.Stop()

	for {
		select {
		case <-stop:
			return
		case <-tick.C:
			t.Flush()
		}
	}
}

var _ ports.Scheduler = (*Ticker)(nil)
