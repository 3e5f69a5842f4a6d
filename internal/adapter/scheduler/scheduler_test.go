package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodviz/moodviz/internal/logger"
	"github.com/moodviz/moodviz/internal/ports"
	"github.com/moodviz/moodviz/internal/testutil"
)

func TestQueue_FlushRunsInOrder(t *testing.T) {
	q := NewQueue()
	var order []int

	h1 := q.RequestFrame(func() { order = append(order, 1) })
	h2 := q.RequestFrame(func() { order = append(order, 2) })

	assert.NotEqual(t, ports.FrameHandle(0), h1)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, 2, q.Pending())

	assert.Equal(t, 2, q.Flush())
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 0, q.Pending())
	assert.Equal(t, 0, q.Flush())
}

func TestQueue_Cancel(t *testing.T) {
	q := NewQueue()
	var ran bool

	h := q.RequestFrame(func() { ran = true })
	q.CancelFrame(h)
	q.CancelFrame(h)
	q.CancelFrame(0)
	q.CancelFrame(999)

	assert.Equal(t, 0, q.Pending())
	assert.Equal(t, 0, q.Flush())
	assert.False(t, ran)
}

func TestQueue_RequestDuringFlushWaitsForNextFlush(t *testing.T) {
	q := NewQueue()
	var frames int

	var loop ports.FrameCallback
	loop = func() {
		frames++
		q.RequestFrame(loop)
	}
	q.RequestFrame(loop)

	q.Flush()
	assert.Equal(t, 1, frames)
	assert.Equal(t, 1, q.Pending())

	assert.Equal(t, 5, q.Run(5))
	assert.Equal(t, 6, frames)
}

func TestQueue_CallbackMayCancelSibling(t *testing.T) {
	q := NewQueue()
	var second ports.FrameHandle
	var ranSecond bool

	q.RequestFrame(func() { q.CancelFrame(second) })
	second = q.RequestFrame(func() { ranSecond = true })

	// The batch is captured before callbacks run.
	q.Flush()
	assert.True(t, ranSecond)
}

func TestQueue_RunStopsWhenIdle(t *testing.T) {
	q := NewQueue()
	q.RequestFrame(func() {})
	assert.Equal(t, 1, q.Run(10))
}

func TestTicker_FlushesUntilStopped(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	tk := NewTicker(logger.NewTestLogger(), 200)
	assert.Equal(t, 5*time.Millisecond, tk.Interval())

	var frames atomic.Int32
	var loop ports.FrameCallback
	loop = func() {
		frames.Add(1)
		tk.RequestFrame(loop)
	}
	tk.RequestFrame(loop)

	tk.Start()
	tk.Start()
	require.Eventually(t, func() bool { return frames.Load() >= 3 }, 2*time.Second, time.Millisecond)

	tk.Stop()
	tk.Stop()
	after := frames.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, frames.Load(), "no flushes after Stop")
	assert.Equal(t, 1, tk.Pending())
}

func TestTicker_DefaultRate(t *testing.T) {
	tk := NewTicker(logger.NewTestLogger(), 0)
	assert.Equal(t, time.Second/60, tk.Interval())
}
