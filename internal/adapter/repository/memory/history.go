// Package memory provides in-memory repository implementations.
package memory

import (
	"sync"

	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/ports"
)

// DefaultHistoryLimit caps the number of remembered sessions.
const DefaultHistoryLimit = 20

// SessionHistory implements ports.SessionHistory with a bounded slice.
//
// Thread-safe: All operations protected by sync.RWMutex.
type SessionHistory struct {
	limit    int
	mu       sync.RWMutex
	sessions []domain.SessionParams // newest first
}

// NewSessionHistory creates an empty history. limit <= 0 selects DefaultHistoryLimit.
func NewSessionHistory(limit int) *SessionHistory {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &SessionHistory{
		limit:    limit,
		sessions: make([]domain.SessionParams, 0, limit),
	}
}

// Record adds params as the most recent session, dropping the oldest one
// when the limit is reached.
func (h *SessionHistory) Record(params domain.SessionParams) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.sessions) == h.limit {
		h.sessions = h.sessions[:h.limit-1]
	}
	h.sessions = append(h.sessions, domain.SessionParams{})
	copy(h.sessions[1:], h.sessions)
	h.sessions[0] = params
}

// Last returns the most recent session.
func (h *SessionHistory) Last() (domain.SessionParams, bool) {
	return h.at(0)
}

// Previous returns the session recorded before the most recent one.
func (h *SessionHistory) Previous() (domain.SessionParams, bool) {
	return h.at(1)
}

func (h *SessionHistory) at(i int) (domain.SessionParams, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i >= len(h.sessions) {
		return domain.SessionParams{}, false
	}
	return h.sessions[i], true
}

// History returns a copy of the recorded sessions, newest first.
func (h *SessionHistory) History() []domain.SessionParams {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]domain.SessionParams, len(h.sessions))
	copy(out, h.sessions)
	return out
}

// Len returns the number of recorded sessions.
func (h *SessionHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Clear forgets all sessions.
func (h *SessionHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions = h.sessions[:0]
}

// Verify interface implementation
var _ ports.SessionHistory = (*SessionHistory)(nil)
