// Package ports define the session history contract.
package ports

import (
	"github.com/moodviz/moodviz/internal/domain"
)

// SessionHistory remembers the sessions started during this run, newest
// first, so a host can step back to an earlier mood. Nothing outlives the
// process.
//
// Thread-safety: Implementations must be thread-safe.
type SessionHistory interface {
	// Record adds params as the most recent session.
	Record(params domain.SessionParams)

	// Last returns the most recent session. ok is false when empty.
	Last() (params domain.SessionParams, ok bool)

	// Previous returns the session before the most recent one.
	Previous() (params domain.SessionParams, ok bool)

	// History returns recorded sessions, newest first.
	History() []domain.SessionParams

	// Clear forgets all sessions.
	Clear()
}
