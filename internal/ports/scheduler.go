// Package ports define the scheduling contract for the animation loop.
package ports

// FrameHandle identifies one pending frame callback.
// The zero value never refers to a pending callback.
type FrameHandle uint64

// FrameCallback is invoked once when the host is ready for the next frame.
type FrameCallback func()

// Scheduler delivers frame callbacks on the host's per-frame signal.
//
// The contract mirrors a display refresh loop: a callback runs at most once,
// on the next refresh after it was requested. A loop re-requests a frame from
// inside its own callback.
//
// Implementations must never invoke a callback while holding an internal lock,
// since callbacks call RequestFrame and CancelFrame.
//
// Thread-safety: Implementations must be thread-safe.
type Scheduler interface {
	// RequestFrame schedules cb for the next frame and returns its handle.
	RequestFrame(cb FrameCallback) FrameHandle

	// CancelFrame drops a pending callback.
	// Cancelling an unknown, already-run or zero handle is a no-op.
	CancelFrame(handle FrameHandle)
}
