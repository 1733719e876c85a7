package service

import (
	"strings"
	"sync"

	"github.com/sgronlund/latias-backend/internal/quiz/domain"
)

// SessionRegistry maps active transport connections to logged-in users.
// It is process-memory only: a restart drops every session, and with it any
// "already logged in" state.
//
// The registry is safe for concurrent use. Lookups are a linear scan over
// the live entries, which stays cheap at the connection counts this service
// sees.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions []domain.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{}
}

// Add records a session for the connection. Callers ensure the credential
// check passed first; the registry itself accepts anything.
func (r *SessionRegistry) Add(connectionID, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, domain.Session{
		ConnectionID: connectionID,
		Username:     username,
	})
}

// Remove drops the session for the connection and reports whether one
// existed. Transport disconnects funnel in here too.
func (r *SessionRegistry) Remove(connectionID string) bool {
	if connectionID == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sessions {
		if s.ConnectionID == connectionID {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return true
		}
	}
	return false
}

// Username returns the logged-in username for the connection.
func (r *SessionRegistry) Username(connectionID string) (string, bool) {
	if connectionID == "" {
		return "", false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ConnectionID == connectionID {
			return s.Username, true
		}
	}
	return "", false
}

// Active reports whether the username has a live session anywhere.
// Usernames match case-insensitively.
func (r *SessionRegistry) Active(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if strings.EqualFold(s.Username, username) {
			return true
		}
	}
	return false
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
