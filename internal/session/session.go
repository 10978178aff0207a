// Package session holds the logged-in user for the lifetime of the
// process. The user record is persisted as JSON under a single keyring
// key, loaded on start, set on login, and cleared on logout. The session
// is passed explicitly to the views that need it; there is no ambient
// global.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sonic/sonic-task-hub/internal/credential"
	"github.com/sonic/sonic-task-hub/internal/model"
)

// sessionKey is the keyring entry holding the serialized user.
const sessionKey = "session-user"

// ErrNoSession is returned by Load when no user is stored.
var ErrNoSession = errors.New("no stored session")

// Session is the explicit session object injected into the application.
type Session struct {
	user *model.User
}

// NewSession returns an in-memory session for the given user. Nothing is
// persisted until Set is called.
func NewSession(user *model.User) *Session {
	return &Session{user: user}
}

// Load reads a previously stored session from the keyring. A missing
// entry yields an empty session and ErrNoSession.
func Load() (*Session, error) {
	raw, err := credential.Get(sessionKey)
	if err != nil || raw == "" {
		return &Session{}, ErrNoSession
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// A corrupt entry is treated as logged out rather than fatal.
		_ = credential.Delete(sessionKey)
		return &Session{}, ErrNoSession
	}

	return &Session{user: &user}, nil
}

// Set stores the user as the active session and persists it.
func (s *Session) Set(user *model.User) error {
	s.user = user

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serializing session user: %w", err)
	}
	if err := credential.Set(sessionKey, string(raw)); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}

// Clear logs out: the in-memory user and the persisted entry are removed.
func (s *Session) Clear() error {
	s.user = nil
	if err := credential.Delete(sessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Active reports whether a user is logged in.
func (s *Session) Active() bool {
	return s.user != nil
}

// User returns the logged-in user, or nil when logged out.
func (s *Session) User() *model.User {
	return s.user
}

// UserID returns the logged-in user's ID; it must only be called when
// Active() is true.
func (s *Session) UserID() int64 {
	return s.user.ID
}
