// Package scheduler provides frame schedulers for hosts without a native
// refresh signal: a manually flushed queue for tests and headless renders,
// and a ticker-driven loop for streaming hosts.
package scheduler

import (
	"sync"

	"github.com/moodviz/moodviz/internal/ports"
)

// Queue holds pending frame callbacks until Flush is called.
// Each Flush runs the callbacks that were pending when it started; callbacks
// requested during a flush wait for the next one.
type Queue struct {
	mu      sync.Mutex
	pending map[ports.FrameHandle]ports.FrameCallback
	order   []ports.FrameHandle
	nextID  ports.FrameHandle
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{pending: make(map[ports.FrameHandle]ports.FrameCallback)}
}

// RequestFrame enqueues cb for the next flush.
func (q *Queue) RequestFrame(cb ports.FrameCallback) ports.FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	q.pending[q.nextID] = cb
	q.order = append(q.order, q.nextID)
	return q.nextID
}

// CancelFrame drops a pending callback.
func (q *Queue) CancelFrame(handle ports.FrameHandle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, handle)
}

// Pending returns the number of callbacks waiting for the next flush.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs the currently pending callbacks in request order and returns
// how many ran. The lock is released before any callback runs.
func (q *Queue) Flush() int {
	q.mu.Lock()
	batch := make([]ports.FrameCallback, 0, len(q.pending))
	for _, h := range q.order {
		if cb, ok := q.pending[h]; ok {
			batch = append(batch, cb)
			delete(q.pending, h)
		}
	}
	q.order = q.order[:0]
	q.mu.Unlock()

	for _, cb := range batch {
		cb()
	}
	return len(batch)
}

// Run flushes n times, stopping early once nothing is pending.
// It returns the number of flushes that ran a callback.
func (q *Queue) Run(n int) int {
	ran := 0
	for range n {
		if q.Flush() == 0 {
			break
		}
		ran++
	}
	return ran
}

var _ ports.Scheduler = (*Queue)(nil)
